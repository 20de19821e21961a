// Package compiler translates the two legacy query micro-languages into
// structured fragments.
//
// TranslateFilter parses the JSON filter expression
//
//	{"where": {"spaces": [ids], "AND": [{"attribute": id, "is": id}]}}
//
// and TranslateSelector parses the path selector grammar
//
//	->[E]                 single hop
//	->[E]->.[P]           property of the hop's entity
//	->[E]->[R]->[E2]      relation of the hop's entity
//	.[P]                  property of the relation entity
//	->[R]->[E]            relation of the relation entity
//
// Both are strict: malformed input is a *TranslateError. Callers that
// prefer to degrade (the builder) decide what to do with the error.
package compiler
