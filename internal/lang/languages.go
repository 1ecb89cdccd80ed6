package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/cue"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/elixir"
	"github.com/smacker/go-tree-sitter/elm"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/groovy"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/lua"
	tsmarkdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/ocaml"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/protobuf"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/svelte"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"

	"symgraph/internal/containment"
	"symgraph/internal/extract"
	"symgraph/internal/model"
)

// DefaultRegistry wires every supported grammar to its plugin. Languages
// with dedicated plugins get structural extraction; the rest run the
// table-driven generic extractor over their grammar.
func DefaultRegistry() *extract.Registry {
	r := extract.NewRegistry()

	r.Register(extract.Registration{
		Language:   "go",
		Extensions: []string{".go"},
		Grammar:    golang.GetLanguage(),
		Extractor:  newGoExtractor(),
	})
	r.Register(extract.Registration{
		Language:   "python",
		Extensions: []string{".py", ".pyw"},
		Grammar:    python.GetLanguage(),
		Extractor:  newPythonExtractor(),
	})
	r.Register(extract.Registration{
		Language:   "javascript",
		Extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		Grammar:    javascript.GetLanguage(),
		Extractor:  newJSExtractor("javascript"),
	})
	r.Register(extract.Registration{
		Language:   "typescript",
		Extensions: []string{".ts", ".mts", ".cts"},
		Grammar:    typescript.GetLanguage(),
		Extractor:  newJSExtractor("typescript"),
	})
	r.Register(extract.Registration{
		Language:   "tsx",
		Extensions: []string{".tsx"},
		Grammar:    tsx.GetLanguage(),
		Extractor:  newJSExtractor("tsx"),
	})
	r.Register(extract.Registration{
		Language:   "rust",
		Extensions: []string{".rs"},
		Grammar:    rust.GetLanguage(),
		Extractor:  newRustExtractor(),
	})
	r.Register(extract.Registration{
		Language:   "java",
		Extensions: []string{".java"},
		Grammar:    java.GetLanguage(),
		Extractor:  newJavaExtractor(),
	})
	r.Register(extract.Registration{
		Language:   "bash",
		Extensions: []string{".sh", ".bash"},
		Grammar:    bash.GetLanguage(),
		Extractor:  newBashExtractor(),
	})

	// SQL scoping inverts the default ranking: a column reference on a
	// table's line belongs to the table before any procedure wrapping
	// the statement.
	r.Register(extract.Registration{
		Language:   "sql",
		Extensions: []string{".sql"},
		Grammar:    sql.GetLanguage(),
		Extractor:  newSQLExtractor(),
		Priorities: containment.Priorities{
			model.KindTable:    1,
			model.KindView:     1,
			model.KindFunction: 2,
			model.KindField:    10,
			model.KindVariable: 10,
			model.KindConstant: 10,
		},
	})
	r.Register(extract.Registration{
		Language:   "markdown",
		Extensions: []string{".md", ".markdown"},
		Grammar:    tsmarkdown.GetLanguage(),
		Extractor:  newMarkdownExtractor(),
	})
	r.Register(extract.Registration{
		Language:   "elixir",
		Extensions: []string{".ex", ".exs"},
		Grammar:    elixir.GetLanguage(),
		Extractor:  newElixirExtractor(),
	})

	for _, g := range genericLanguages() {
		r.Register(extract.Registration{
			Language:   g.language,
			Extensions: g.extensions,
			Grammar:    g.grammar,
			Extractor:  newGenericExtractor(g.spec),
		})
	}

	return r
}

type genericLanguage struct {
	language   string
	extensions []string
	grammar    *sitter.Language
	spec       genericSpec
}

// genericLanguages tables every language served by the fallback
// extractor. Definition rules name the grammar's declaration node types;
// a language with no known call shape simply omits calls.
func genericLanguages() []genericLanguage {
	return []genericLanguage{
		{
			language:   "c",
			extensions: []string{".c", ".h"},
			grammar:    c.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"function_definition":  {kind: model.KindFunction},
					"struct_specifier":     {kind: model.KindStruct, nameField: "name"},
					"union_specifier":      {kind: model.KindUnion, nameField: "name"},
					"enum_specifier":       {kind: model.KindEnum, nameField: "name"},
					"type_definition":      {kind: model.KindType, nameTypes: []string{"type_identifier"}},
					"preproc_def":          {kind: model.KindConstant, nameField: "name"},
					"preproc_function_def": {kind: model.KindFunction, nameField: "name"},
				},
				calls:     []string{"call_expression"},
				callField: "function",
			},
		},
		{
			language:   "cpp",
			extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
			grammar:    cpp.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"function_definition":  {kind: model.KindFunction},
					"class_specifier":      {kind: model.KindClass, nameField: "name"},
					"struct_specifier":     {kind: model.KindStruct, nameField: "name"},
					"union_specifier":      {kind: model.KindUnion, nameField: "name"},
					"enum_specifier":       {kind: model.KindEnum, nameField: "name"},
					"namespace_definition": {kind: model.KindNamespace, nameField: "name"},
					"type_definition":      {kind: model.KindType, nameTypes: []string{"type_identifier"}},
					"preproc_def":          {kind: model.KindConstant, nameField: "name"},
				},
				calls:     []string{"call_expression"},
				callField: "function",
			},
		},
		{
			language:   "csharp",
			extensions: []string{".cs"},
			grammar:    csharp.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class_declaration":       {kind: model.KindClass, nameField: "name"},
					"interface_declaration":   {kind: model.KindInterface, nameField: "name"},
					"struct_declaration":      {kind: model.KindStruct, nameField: "name"},
					"record_declaration":      {kind: model.KindClass, nameField: "name"},
					"enum_declaration":        {kind: model.KindEnum, nameField: "name"},
					"method_declaration":      {kind: model.KindMethod, nameField: "name"},
					"constructor_declaration": {kind: model.KindConstructor, nameField: "name"},
					"property_declaration":    {kind: model.KindProperty, nameField: "name"},
					"delegate_declaration":    {kind: model.KindType, nameField: "name"},
					"namespace_declaration":   {kind: model.KindNamespace, nameField: "name"},
				},
				calls:     []string{"invocation_expression"},
				callField: "function",
			},
		},
		{
			language:   "kotlin",
			extensions: []string{".kt", ".kts"},
			grammar:    kotlin.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class_declaration":    {kind: model.KindClass, nameTypes: []string{"type_identifier", "simple_identifier"}},
					"object_declaration":   {kind: model.KindClass, nameTypes: []string{"type_identifier", "simple_identifier"}},
					"function_declaration": {kind: model.KindFunction, nameTypes: []string{"simple_identifier"}},
					"property_declaration": {kind: model.KindProperty, nameTypes: []string{"simple_identifier"}},
				},
				calls: []string{"call_expression"},
			},
		},
		{
			language:   "swift",
			extensions: []string{".swift"},
			grammar:    swift.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class_declaration":    {kind: model.KindClass, nameField: "name", nameTypes: []string{"type_identifier"}},
					"protocol_declaration": {kind: model.KindInterface, nameField: "name", nameTypes: []string{"type_identifier"}},
					"function_declaration": {kind: model.KindFunction, nameField: "name", nameTypes: []string{"simple_identifier"}},
					"property_declaration": {kind: model.KindProperty, nameTypes: []string{"simple_identifier", "pattern"}},
				},
				calls: []string{"call_expression"},
			},
		},
		{
			language:   "scala",
			extensions: []string{".scala", ".sc"},
			grammar:    scala.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class_definition":    {kind: model.KindClass, nameField: "name"},
					"object_definition":   {kind: model.KindClass, nameField: "name"},
					"trait_definition":    {kind: model.KindTrait, nameField: "name"},
					"function_definition": {kind: model.KindFunction, nameField: "name"},
					"val_definition":      {kind: model.KindVariable, nameTypes: []string{"identifier"}},
				},
				calls: []string{"call_expression"},
			},
		},
		{
			language:   "ruby",
			extensions: []string{".rb", ".rake"},
			grammar:    ruby.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class":            {kind: model.KindClass, nameField: "name"},
					"module":           {kind: model.KindModule, nameField: "name"},
					"method":           {kind: model.KindMethod, nameField: "name"},
					"singleton_method": {kind: model.KindMethod, nameField: "name"},
				},
				calls:     []string{"call"},
				callField: "method",
			},
		},
		{
			language:   "php",
			extensions: []string{".php"},
			grammar:    php.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class_declaration":     {kind: model.KindClass, nameField: "name"},
					"interface_declaration": {kind: model.KindInterface, nameField: "name"},
					"trait_declaration":     {kind: model.KindTrait, nameField: "name"},
					"function_definition":   {kind: model.KindFunction, nameField: "name"},
					"method_declaration":    {kind: model.KindMethod, nameField: "name"},
				},
				calls:     []string{"function_call_expression"},
				callField: "function",
			},
		},
		{
			language:   "lua",
			extensions: []string{".lua"},
			grammar:    lua.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"function_declaration": {kind: model.KindFunction, nameField: "name"},
				},
				calls:     []string{"function_call"},
				callField: "name",
			},
		},
		{
			language:   "elm",
			extensions: []string{".elm"},
			grammar:    elm.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"value_declaration":      {kind: model.KindFunction, nameTypes: []string{"lower_case_identifier"}},
					"type_declaration":       {kind: model.KindType, nameTypes: []string{"upper_case_identifier"}},
					"type_alias_declaration": {kind: model.KindType, nameTypes: []string{"upper_case_identifier"}},
				},
				calls: []string{"function_call_expr"},
			},
		},
		{
			language:   "ocaml",
			extensions: []string{".ml", ".mli"},
			grammar:    ocaml.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"let_binding":    {kind: model.KindFunction, nameTypes: []string{"value_name", "identifier"}},
					"type_binding":   {kind: model.KindType, nameField: "name", nameTypes: []string{"type_constructor"}},
					"module_binding": {kind: model.KindModule, nameTypes: []string{"module_name"}},
				},
				calls: []string{"application_expression"},
			},
		},
		{
			language:   "groovy",
			extensions: []string{".groovy", ".gradle"},
			grammar:    groovy.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"class_definition":    {kind: model.KindClass, nameField: "name", nameTypes: []string{"identifier"}},
					"function_definition": {kind: model.KindFunction, nameField: "name", nameTypes: []string{"identifier"}},
				},
			},
		},
		{
			language:   "css",
			extensions: []string{".css"},
			grammar:    css.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"rule_set": {kind: model.KindProperty, nameTypes: []string{"class_selector", "id_selector", "tag_name"}},
				},
			},
		},
		{
			language:   "html",
			extensions: []string{".html", ".htm"},
			grammar:    html.GetLanguage(),
			spec:       genericSpec{definitions: map[string]nodeRule{}},
		},
		{
			language:   "svelte",
			extensions: []string{".svelte"},
			grammar:    svelte.GetLanguage(),
			spec:       genericSpec{definitions: map[string]nodeRule{}},
		},
		{
			language:   "dockerfile",
			extensions: []string{".dockerfile"},
			grammar:    dockerfile.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"from_instruction": {kind: model.KindImport, nameTypes: []string{"image_spec", "image_name"}},
					"arg_instruction":  {kind: model.KindVariable, nameTypes: []string{"unquoted_string", "identifier"}},
					"env_instruction":  {kind: model.KindVariable, nameTypes: []string{"env_pair", "unquoted_string"}},
				},
			},
		},
		{
			language:   "hcl",
			extensions: []string{".tf", ".hcl", ".tfvars"},
			grammar:    hcl.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"block":     {kind: model.KindModule, nameTypes: []string{"identifier"}},
					"attribute": {kind: model.KindProperty, nameTypes: []string{"identifier"}},
				},
			},
		},
		{
			language:   "toml",
			extensions: []string{".toml"},
			grammar:    toml.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"table":       {kind: model.KindNamespace, nameTypes: []string{"bare_key", "dotted_key", "quoted_key"}},
					"table_array": {kind: model.KindNamespace, nameTypes: []string{"bare_key", "dotted_key", "quoted_key"}},
					"pair":        {kind: model.KindProperty, nameTypes: []string{"bare_key", "quoted_key"}},
				},
			},
		},
		{
			language:   "yaml",
			extensions: []string{".yaml", ".yml", ".json"},
			grammar:    yaml.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"block_mapping_pair": {kind: model.KindProperty, nameField: "key"},
					"flow_pair":          {kind: model.KindProperty, nameField: "key"},
				},
			},
		},
		{
			language:   "cue",
			extensions: []string{".cue"},
			grammar:    cue.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"field": {kind: model.KindProperty, nameTypes: []string{"identifier", "label"}},
				},
			},
		},
		{
			language:   "protobuf",
			extensions: []string{".proto"},
			grammar:    protobuf.GetLanguage(),
			spec: genericSpec{
				definitions: map[string]nodeRule{
					"message": {kind: model.KindStruct, nameTypes: []string{"message_name", "identifier"}},
					"enum":    {kind: model.KindEnum, nameTypes: []string{"enum_name", "identifier"}},
					"service": {kind: model.KindInterface, nameTypes: []string{"service_name", "identifier"}},
					"rpc":     {kind: model.KindMethod, nameTypes: []string{"rpc_name", "identifier"}},
					"field":   {kind: model.KindField, nameTypes: []string{"identifier"}},
				},
			},
		},
	}
}
