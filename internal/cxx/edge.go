// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cxx

import "strconv"

// Edge identifies the role of a node within its parent, similar to [edge.Kind] for Go syntax trees.
//
// [edge.Kind]: https://pkg.go.dev/golang.org/x/tools/go/ast/edge#Kind
type Edge uint8

const (
	EdgeNone    Edge = iota // no parent
	EdgeDecl                // member of a translation unit, namespace or record
	EdgeParam               // function parameter
	EdgeBody                // body of a function, lambda or loop
	EdgeStmt                // element of a compound statement
	EdgeInit                // init-statement of an if, for or switch statement
	EdgeCondVar             // condition variable of an if, while, for or switch statement
	EdgeCond                // condition of an if, while, for, do or switch statement
	EdgeThen                // then branch of an if statement
	EdgeElse                // else branch of an if statement
	EdgeInc                 // increment of a for statement
	EdgeCallee              // callee of a call
	EdgeArg                 // call argument
	EdgeLHS                 // left operand of a binary operator
	EdgeRHS                 // right operand of a binary operator
	EdgeOperand             // operand of a unary operator, cast or parenthesized expression
	EdgeValue               // value of a return statement
	EdgeVar                 // declaration of a declaration statement
	EdgeVarInit             // initializer of a variable
	EdgeSubStmt             // sub-statement of a case, default or label statement
	EdgeBase                // base of a member access
	EdgeElement             // element of an initializer list
	EdgeOther               // any other child
)

var edgeNames = [...]string{
	EdgeNone:    "None",
	EdgeDecl:    "Decl",
	EdgeParam:   "Param",
	EdgeBody:    "Body",
	EdgeStmt:    "Stmt",
	EdgeInit:    "Init",
	EdgeCondVar: "CondVar",
	EdgeCond:    "Cond",
	EdgeThen:    "Then",
	EdgeElse:    "Else",
	EdgeInc:     "Inc",
	EdgeCallee:  "Callee",
	EdgeArg:     "Arg",
	EdgeLHS:     "LHS",
	EdgeRHS:     "RHS",
	EdgeOperand: "Operand",
	EdgeValue:   "Value",
	EdgeVar:     "Var",
	EdgeVarInit: "VarInit",
	EdgeSubStmt: "SubStmt",
	EdgeBase:    "Base",
	EdgeElement: "Element",
	EdgeOther:   "Other",
}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}

	return "Edge(" + strconv.Itoa(int(e)) + ")"
}

// Statement reports whether a child attached by this edge is a full statement,
// meaning its value is discarded and it can be replaced by another statement.
//
// Init-statements and for loop increments discard values too, but can't hold arbitrary statements.
func (e Edge) Statement() bool {
	switch e {
	case EdgeStmt, EdgeThen, EdgeElse, EdgeBody, EdgeSubStmt:
		return true

	default:
		return false
	}
}
