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

package clangjson

import "fillmore-labs.com/earlyexit/internal/cxx"

var kinds = map[string]cxx.Kind{
	"TranslationUnitDecl": cxx.TranslationUnitDecl,

	"NamespaceDecl":      cxx.Namespace,
	"LinkageSpecDecl":    cxx.Namespace,
	"ExternCContextDecl": cxx.Namespace,

	"FunctionDecl":          cxx.Function,
	"CXXMethodDecl":         cxx.Function,
	"CXXConstructorDecl":    cxx.Function,
	"CXXDestructorDecl":     cxx.Function,
	"CXXConversionDecl":     cxx.Function,
	"CXXDeductionGuideDecl": cxx.Function,

	"ParmVarDecl": cxx.Param,

	"CXXRecordDecl":                          cxx.Record,
	"RecordDecl":                             cxx.Record,
	"ClassTemplateSpecializationDecl":        cxx.Record,
	"ClassTemplatePartialSpecializationDecl": cxx.Record,

	"FieldDecl": cxx.Field,

	"CompoundStmt":    cxx.CompoundStmt,
	"ReturnStmt":      cxx.ReturnStmt,
	"IfStmt":          cxx.IfStmt,
	"ForStmt":         cxx.LoopStmt,
	"CXXForRangeStmt": cxx.LoopStmt,
	"WhileStmt":       cxx.LoopStmt,
	"DoStmt":          cxx.LoopStmt,
	"SwitchStmt":      cxx.SwitchStmt,
	"CaseStmt":        cxx.LabeledStmt,
	"DefaultStmt":     cxx.LabeledStmt,
	"LabelStmt":       cxx.LabeledStmt,
	"AttributedStmt":  cxx.LabeledStmt,
	"NullStmt":        cxx.NullStmt,
	"DeclStmt":        cxx.DeclStmt,

	"VarDecl":           cxx.VarDecl,
	"DecompositionDecl": cxx.VarDecl,

	"CallExpr":            cxx.CallExpr,
	"CXXMemberCallExpr":   cxx.CallExpr,
	"CXXOperatorCallExpr": cxx.CallExpr,
	"UserDefinedLiteral":  cxx.CallExpr,

	"MemberExpr":             cxx.MemberExpr,
	"DeclRefExpr":            cxx.DeclRefExpr,
	"UnaryOperator":          cxx.UnaryOperator,
	"BinaryOperator":         cxx.BinaryOperator,
	"CompoundAssignOperator": cxx.BinaryOperator,
	"ParenExpr":              cxx.ParenExpr,

	"CStyleCastExpr":         cxx.CastExpr,
	"CXXStaticCastExpr":      cxx.CastExpr,
	"CXXFunctionalCastExpr":  cxx.CastExpr,
	"CXXReinterpretCastExpr": cxx.CastExpr,
	"CXXConstCastExpr":       cxx.CastExpr,
	"CXXDynamicCastExpr":     cxx.CastExpr,

	"LambdaExpr":            cxx.LambdaExpr,
	"StringLiteral":         cxx.StringLiteral,
	"InitListExpr":          cxx.InitListExpr,
	"DesignatedInitExpr":    cxx.DesignatedInitExpr,
	"ImplicitValueInitExpr": cxx.ImplicitValueInitExpr,
}

func kindOf(class string) cxx.Kind {
	return kinds[class] // Other for unknown classes
}

// implicitClass reports whether the node is a wrapper clang inserts without source spelling.
func implicitClass(j *jsonNode) bool {
	switch j.Kind {
	case "ImplicitCastExpr", "ExprWithCleanups", "MaterializeTemporaryExpr",
		"CXXBindTemporaryExpr", "ConstantExpr", "CXXDefaultArgExpr", "ImplicitValueInitExpr":
		return true

	case "CXXConstructExpr":
		return j.Elidable

	default:
		return false
	}
}

// edgesOf determines the role of each inner node. inner still contains "{}" placeholders
// for absent children, so positions are stable.
func edgesOf(j *jsonNode, inner []*jsonNode) []cxx.Edge {
	edges := make([]cxx.Edge, len(inner))

	fill := func(seq ...cxx.Edge) {
		for i := range edges {
			if i < len(seq) {
				edges[i] = seq[i]
			} else {
				edges[i] = cxx.EdgeOther
			}
		}
	}

	all := func(e cxx.Edge) {
		for i := range edges {
			edges[i] = e
		}
	}

	last := func(e cxx.Edge) {
		all(cxx.EdgeOther)

		if len(edges) > 0 {
			edges[len(edges)-1] = e
		}
	}

	switch j.Kind {
	case "TranslationUnitDecl", "NamespaceDecl", "LinkageSpecDecl", "CXXRecordDecl", "RecordDecl",
		"ClassTemplateDecl", "FunctionTemplateDecl", "ClassTemplateSpecializationDecl",
		"ClassTemplatePartialSpecializationDecl":
		all(cxx.EdgeDecl)

	case "FunctionDecl", "CXXMethodDecl", "CXXConstructorDecl", "CXXDestructorDecl", "CXXConversionDecl":
		for i, c := range inner {
			switch {
			case c.placeholder():
				edges[i] = cxx.EdgeOther

			case c.Kind == "ParmVarDecl":
				edges[i] = cxx.EdgeParam

			case c.Kind == "CompoundStmt" || c.Kind == "CXXTryStmt":
				edges[i] = cxx.EdgeBody

			default:
				edges[i] = cxx.EdgeOther
			}
		}

	case "LambdaExpr":
		last(cxx.EdgeBody)

	case "CompoundStmt":
		all(cxx.EdgeStmt)

	case "ReturnStmt":
		all(cxx.EdgeValue)

	case "DeclStmt":
		all(cxx.EdgeVar)

	case "IfStmt":
		fill(conditional(j.HasInit, j.HasVar, cxx.EdgeThen, j.HasElse)...)

	case "SwitchStmt":
		fill(conditional(j.HasInit, j.HasVar, cxx.EdgeBody, false)...)

	case "WhileStmt":
		fill(conditional(false, j.HasVar, cxx.EdgeBody, false)...)

	case "ForStmt":
		fill(cxx.EdgeInit, cxx.EdgeCondVar, cxx.EdgeCond, cxx.EdgeInc, cxx.EdgeBody)

	case "CXXForRangeStmt":
		last(cxx.EdgeBody)

	case "DoStmt":
		fill(cxx.EdgeBody, cxx.EdgeCond)

	case "CaseStmt", "DefaultStmt", "LabelStmt", "AttributedStmt":
		last(cxx.EdgeSubStmt)

	case "VarDecl", "ParmVarDecl", "DecompositionDecl":
		all(cxx.EdgeOther)

		if j.Init != "" && len(edges) > 0 {
			edges[len(edges)-1] = cxx.EdgeVarInit
		}

	case "CallExpr", "CXXMemberCallExpr", "CXXOperatorCallExpr", "UserDefinedLiteral":
		all(cxx.EdgeArg)

		if len(edges) > 0 {
			edges[0] = cxx.EdgeCallee
		}

	case "MemberExpr":
		all(cxx.EdgeBase)

	case "BinaryOperator", "CompoundAssignOperator":
		fill(cxx.EdgeLHS, cxx.EdgeRHS)

	case "InitListExpr":
		all(cxx.EdgeElement)

	case "UnaryOperator", "ParenExpr", "ImplicitCastExpr", "CStyleCastExpr", "CXXStaticCastExpr",
		"CXXFunctionalCastExpr", "CXXReinterpretCastExpr", "CXXConstCastExpr", "CXXDynamicCastExpr",
		"ExprWithCleanups", "MaterializeTemporaryExpr", "CXXBindTemporaryExpr", "ConstantExpr":
		all(cxx.EdgeOperand)

	default:
		all(cxx.EdgeOther)
	}

	return edges
}

// conditional returns the child sequence of if, switch and while statements.
func conditional(hasInit, hasVar bool, body cxx.Edge, hasElse bool) []cxx.Edge {
	seq := make([]cxx.Edge, 0, 5)

	if hasInit {
		seq = append(seq, cxx.EdgeInit)
	}

	if hasVar {
		seq = append(seq, cxx.EdgeCondVar)
	}

	seq = append(seq, cxx.EdgeCond, body)

	if hasElse {
		seq = append(seq, cxx.EdgeElse)
	}

	return seq
}
