package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexTrailingWhitespace Code = 1002
	LexTabInLine          Code = 1003
	LexBadNumber          Code = 1004

	// Отступы, скобки, синтаксис
	SynInfo              Code = 2000
	SynTabIndent         Code = 2001
	SynBadDedent         Code = 2002
	SynUnexpectedIndent  Code = 2003
	SynUnexpectedClose   Code = 2010
	SynMismatchedBracket Code = 2011
	SynUnclosedBracket   Code = 2012
	SynExpectItem        Code = 2020
	SynExpectIdentifier  Code = 2021
	SynExpectColon       Code = 2022
	SynExpectType        Code = 2023
	SynInvalidImportPath Code = 2024
	SynUnexpectedToken   Code = 2025

	// Семантические
	SemaInfo             Code = 3000
	SemaDuplicateSymbol  Code = 3001
	SemaNameStyle        Code = 3002
	SemaUnresolvedSymbol Code = 3003
	SemaShadowSymbol     Code = 3004

	// Ввод-вывод
	IOInfo        Code = 4000
	IOCannotOpen  Code = 4001
	IOInvalidUTF8 Code = 4002
	IOReadFailed  Code = 4003

	// Проект и модули
	ProjInfo             Code = 5000
	ProjDuplicateModule  Code = 5001
	ProjMissingModule    Code = 5002
	ProjSelfImport       Code = 5003
	ProjImportCycle      Code = 5004
	ProjDependencyFailed Code = 5007

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexTrailingWhitespace: "Trailing whitespace",
	LexTabInLine:          "Tab character inside a line",
	LexBadNumber:          "Malformed number",
	SynInfo:               "Syntax information",
	SynTabIndent:          "Tab used for indentation",
	SynBadDedent:          "Dedent does not match any outer level",
	SynUnexpectedIndent:   "Unexpected indentation",
	SynUnexpectedClose:    "Unexpected closing bracket",
	SynMismatchedBracket:  "Mismatched bracket",
	SynUnclosedBracket:    "Unclosed bracket",
	SynExpectItem:         "Expect top-level item",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectColon:        "Expect colon",
	SynExpectType:         "Expect type",
	SynInvalidImportPath:  "Invalid import path",
	SynUnexpectedToken:    "Unexpected token",
	SemaInfo:              "Semantic information",
	SemaDuplicateSymbol:   "Duplicate symbol",
	SemaNameStyle:         "Name style warning",
	SemaUnresolvedSymbol:  "Unresolved symbol",
	SemaShadowSymbol:      "Shadowed symbol",
	IOInfo:                "IO information",
	IOCannotOpen:          "Cannot open file",
	IOInvalidUTF8:         "Invalid UTF-8",
	IOReadFailed:          "Read failed",
	ProjInfo:              "Project information",
	ProjDuplicateModule:   "Duplicate module",
	ProjMissingModule:     "Missing module",
	ProjSelfImport:        "Module imports itself",
	ProjImportCycle:       "Cyclic module inclusion",
	ProjDependencyFailed:  "Dependency module has errors",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
