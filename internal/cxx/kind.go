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

// Kind classifies a [Node] independently of the host's concrete node class.
//
// Several host classes map to one kind: [Function] covers free functions, methods,
// constructors and conversion functions, [CallExpr] covers member and operator calls.
// The original class name is preserved in [Node.Class].
type Kind uint8

const (
	// Other is any node the checker does not inspect by kind.
	Other Kind = iota

	// TranslationUnitDecl is the root of a translation unit.
	TranslationUnitDecl

	// Namespace is a namespace or linkage specification.
	Namespace

	// Function is a function, method, constructor, destructor or conversion function declaration.
	Function

	// Param is a function parameter.
	Param

	// Record is a class, struct or union declaration.
	Record

	// Field is a data member declaration.
	Field

	// CompoundStmt is a braced statement list.
	CompoundStmt

	// ReturnStmt is a return statement.
	ReturnStmt

	// IfStmt is an if statement.
	IfStmt

	// LoopStmt is a for, range-for, while or do statement.
	LoopStmt

	// SwitchStmt is a switch statement.
	SwitchStmt

	// LabeledStmt is a case, default or label statement.
	LabeledStmt

	// NullStmt is an empty statement.
	NullStmt

	// DeclStmt is a declaration statement.
	DeclStmt

	// VarDecl is a variable declaration.
	VarDecl

	// CallExpr is a call, member call or overloaded operator call.
	CallExpr

	// MemberExpr is a member access.
	MemberExpr

	// DeclRefExpr is a reference to a declaration.
	DeclRefExpr

	// UnaryOperator is a unary operator.
	UnaryOperator

	// BinaryOperator is a binary or compound assignment operator.
	BinaryOperator

	// ParenExpr is a parenthesized expression.
	ParenExpr

	// CastExpr is an explicitly written cast.
	CastExpr

	// LambdaExpr is a lambda expression.
	LambdaExpr

	// StringLiteral is a string literal.
	StringLiteral

	// InitListExpr is a braced initializer list.
	InitListExpr

	// DesignatedInitExpr is a designated initializer.
	DesignatedInitExpr

	// ImplicitValueInitExpr is an implicit value initialization.
	ImplicitValueInitExpr
)

var kindNames = [...]string{
	Other:                 "Other",
	TranslationUnitDecl:   "TranslationUnitDecl",
	Namespace:             "Namespace",
	Function:              "Function",
	Param:                 "Param",
	Record:                "Record",
	Field:                 "Field",
	CompoundStmt:          "CompoundStmt",
	ReturnStmt:            "ReturnStmt",
	IfStmt:                "IfStmt",
	LoopStmt:              "LoopStmt",
	SwitchStmt:            "SwitchStmt",
	LabeledStmt:           "LabeledStmt",
	NullStmt:              "NullStmt",
	DeclStmt:              "DeclStmt",
	VarDecl:               "VarDecl",
	CallExpr:              "CallExpr",
	MemberExpr:            "MemberExpr",
	DeclRefExpr:           "DeclRefExpr",
	UnaryOperator:         "UnaryOperator",
	BinaryOperator:        "BinaryOperator",
	ParenExpr:             "ParenExpr",
	CastExpr:              "CastExpr",
	LambdaExpr:            "LambdaExpr",
	StringLiteral:         "StringLiteral",
	InitListExpr:          "InitListExpr",
	DesignatedInitExpr:    "DesignatedInitExpr",
	ImplicitValueInitExpr: "ImplicitValueInitExpr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Scope reports whether nodes of this kind start a new function scope.
// Traversals of a function body do not descend into them.
func (k Kind) Scope() bool {
	switch k {
	case Function, Record, LambdaExpr:
		return true

	default:
		return false
	}
}
