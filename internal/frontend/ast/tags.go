package ast

import "fmt"

// Tag identifies the grammar construct or token a node stands for.
// Construct tags come first; everything from Identifier on is a token leaf.
type Tag int

const (
	Empty Tag = iota // an omitted optional clause

	// declarations
	TranslationUnit
	VariableDeclaration
	BasicType
	StructType
	UnionType
	StructTypeDefinition
	FieldDefinitionList
	DeclaratorList
	NamedDeclarator
	AbstractDeclarator
	PointerDeclarator
	ArrayDeclarator
	FunctionDeclaration
	FunctionDefinition
	FunctionParameterList
	FunctionParameter

	// statements
	StatementList
	ExpressionStatement
	ReturnStatement
	ReturnExpressionStatement
	WhileStatement
	DoWhileStatement
	ForStatement
	IfStatement
	IfElseStatement

	// expressions
	BinaryExpression
	UnaryExpression
	PostfixExpression
	ConditionalExpression
	CastExpression
	FunctionCallExpression
	ArgumentExpressionList
	FieldRefExpression
	IndirectFieldRefExpression
	ArrayElementRefExpression
	VariableRef
	LiteralValue

	// token leaves; Identifier must stay the first of them
	Identifier
	IntLit
	CharLit
	StrLit

	// operators
	Assign
	Plus
	Minus
	Asterisk
	Divide
	Mod
	LogicalAnd
	LogicalOr
	LT
	GT
	LTE
	GTE
	Equality
	Inequality
	Ampersand
	LogicalNot
	BitwiseNot
	Increment
	Decrement

	// type specifiers and qualifiers
	Signed
	Unsigned
	Char
	Short
	Int
	Long
	Void
	Const
	Volatile

	// storage classes
	Static
	Extern

	numTags
)

var tagNames = [numTags]string{
	Empty:                      "empty",
	TranslationUnit:            "translation_unit",
	VariableDeclaration:        "variable_declaration",
	BasicType:                  "basic_type",
	StructType:                 "struct_type",
	UnionType:                  "union_type",
	StructTypeDefinition:       "struct_type_definition",
	FieldDefinitionList:        "field_definition_list",
	DeclaratorList:             "declarator_list",
	NamedDeclarator:            "named_declarator",
	AbstractDeclarator:         "abstract_declarator",
	PointerDeclarator:          "pointer_declarator",
	ArrayDeclarator:            "array_declarator",
	FunctionDeclaration:        "function_declaration",
	FunctionDefinition:         "function_definition",
	FunctionParameterList:      "function_parameter_list",
	FunctionParameter:          "function_parameter",
	StatementList:              "statement_list",
	ExpressionStatement:        "expression_statement",
	ReturnStatement:            "return_statement",
	ReturnExpressionStatement:  "return_expression_statement",
	WhileStatement:             "while_statement",
	DoWhileStatement:           "do_while_statement",
	ForStatement:               "for_statement",
	IfStatement:                "if_statement",
	IfElseStatement:            "if_else_statement",
	BinaryExpression:           "binary_expression",
	UnaryExpression:            "unary_expression",
	PostfixExpression:          "postfix_expression",
	ConditionalExpression:      "conditional_expression",
	CastExpression:             "cast_expression",
	FunctionCallExpression:     "function_call_expression",
	ArgumentExpressionList:     "argument_expression_list",
	FieldRefExpression:         "field_ref_expression",
	IndirectFieldRefExpression: "indirect_field_ref_expression",
	ArrayElementRefExpression:  "array_element_ref_expression",
	VariableRef:                "variable_ref",
	LiteralValue:               "literal_value",
	Identifier:                 "identifier",
	IntLit:                     "int_lit",
	CharLit:                    "char_lit",
	StrLit:                     "str_lit",
	Assign:                     "=",
	Plus:                       "+",
	Minus:                      "-",
	Asterisk:                   "*",
	Divide:                     "/",
	Mod:                        "%",
	LogicalAnd:                 "&&",
	LogicalOr:                  "||",
	LT:                         "<",
	GT:                         ">",
	LTE:                        "<=",
	GTE:                        ">=",
	Equality:                   "==",
	Inequality:                 "!=",
	Ampersand:                  "&",
	LogicalNot:                 "!",
	BitwiseNot:                 "~",
	Increment:                  "++",
	Decrement:                  "--",
	Signed:                     "signed",
	Unsigned:                   "unsigned",
	Char:                       "char",
	Short:                      "short",
	Int:                        "int",
	Long:                       "long",
	Void:                       "void",
	Const:                      "const",
	Volatile:                   "volatile",
	Static:                     "static",
	Extern:                     "extern",
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, numTags)
	for t := Tag(0); t < numTags; t++ {
		if tagNames[t] != "" {
			m[tagNames[t]] = t
		}
	}
	return m
}()

func (t Tag) String() string {
	if t >= 0 && t < numTags && tagNames[t] != "" {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// IsToken reports whether t is a token leaf rather than a grammar construct.
func (t Tag) IsToken() bool {
	return t >= Identifier && t < numTags
}

// Constructs returns every construct tag, in declaration order.
func Constructs() []Tag {
	tags := make([]Tag, 0, Identifier)
	for t := Tag(0); t < Identifier; t++ {
		tags = append(tags, t)
	}
	return tags
}

// ParseTag maps a tag name, as produced by String, back to its Tag.
func ParseTag(name string) (Tag, error) {
	t, ok := tagsByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown tag %q", name)
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	if t < 0 || t >= numTags || tagNames[t] == "" {
		return nil, fmt.Errorf("cannot marshal %s", t)
	}
	return []byte(tagNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	v, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
