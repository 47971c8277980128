package schema

// comparisonOps is the default operator set for scalar fields.
var comparisonOps = []string{"=", "!=", ">", ">=", "<", "<=", "in"}

// textOps adds the pattern-match operators available on string fields.
var textOps = []string{"=", "!=", "~", "!~", "in"}

// Default returns a registry seeded with the built-in security event
// schema: common SIEM fields, the core function set, operators, the pipe
// commands, and the language keywords used for completion ranking.
func Default() *Registry {
	r := New()

	for _, f := range []FieldDefinition{
		{Name: "timestamp", Type: "timestamp", Category: "event", AllowedOperators: comparisonOps},
		{Name: "event_type", Type: "string", Category: "event", AllowedOperators: textOps},
		{Name: "event_id", Type: "number", Category: "event", AllowedOperators: comparisonOps},
		{Name: "severity", Type: "string", Category: "event", AllowedOperators: textOps},
		{Name: "message", Type: "string", Category: "event", AllowedOperators: textOps},
		{Name: "user", Type: "string", Category: "identity", AllowedOperators: textOps},
		{Name: "domain", Type: "string", Category: "identity", AllowedOperators: textOps},
		{Name: "computer", Type: "string", Category: "host", AllowedOperators: textOps},
		{Name: "os", Type: "string", Category: "host", AllowedOperators: textOps},
		{Name: "src_ip", Type: "ip", Category: "network", AllowedOperators: textOps},
		{Name: "dst_ip", Type: "ip", Category: "network", AllowedOperators: textOps},
		{Name: "src_port", Type: "number", Category: "network", AllowedOperators: comparisonOps},
		{Name: "dst_port", Type: "number", Category: "network", AllowedOperators: comparisonOps},
		{Name: "protocol", Type: "string", Category: "network", AllowedOperators: textOps},
		{Name: "bytes_in", Type: "number", Category: "network", AllowedOperators: comparisonOps},
		{Name: "bytes_out", Type: "number", Category: "network", AllowedOperators: comparisonOps},
		{Name: "process_name", Type: "string", Category: "process", AllowedOperators: textOps},
		{Name: "process_id", Type: "number", Category: "process", AllowedOperators: comparisonOps},
		{Name: "parent_process", Type: "string", Category: "process", AllowedOperators: textOps},
		{Name: "command_line", Type: "string", Category: "process", AllowedOperators: textOps},
		{Name: "file_path", Type: "string", Category: "file", AllowedOperators: textOps},
		{Name: "file_hash", Type: "string", Category: "file", AllowedOperators: textOps},
		{Name: "status", Type: "string", Category: "event", AllowedOperators: textOps},
		{Name: "action", Type: "string", Category: "event", AllowedOperators: textOps},
		{Name: "rule_name", Type: "string", Category: "detection", AllowedOperators: textOps},
	} {
		r.RegisterField(f)
	}

	field := Parameter{Name: "field", Type: "string"}
	for _, fn := range []FunctionDefinition{
		{Name: "count", Parameters: []Parameter{{Name: "field", Type: "string", Optional: true}}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "min", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "max", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "sum", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "avg", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "stddev", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "variance", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryAggregate},
		{Name: "first", Parameters: []Parameter{field}, ReturnType: "any", Category: CategoryAggregate},
		{Name: "last", Parameters: []Parameter{field}, ReturnType: "any", Category: CategoryAggregate},
		{Name: "values", Parameters: []Parameter{field}, ReturnType: "array", Category: CategoryAggregate},
		{Name: "unique_values", Parameters: []Parameter{field}, ReturnType: "array", Category: CategoryAggregate},
		{Name: "distinct_values", Parameters: []Parameter{field}, ReturnType: "array", Category: CategoryAggregate},
		{Name: "regex_match", Parameters: []Parameter{field, {Name: "pattern", Type: "string"}}, ReturnType: "boolean", Category: CategoryScalar},
		{Name: "lower", Parameters: []Parameter{field}, ReturnType: "string", Category: CategoryScalar},
		{Name: "upper", Parameters: []Parameter{field}, ReturnType: "string", Category: CategoryScalar},
		{Name: "len", Parameters: []Parameter{field}, ReturnType: "number", Category: CategoryScalar},
		{Name: "coalesce", Parameters: []Parameter{field, {Name: "fallback", Type: "any"}}, ReturnType: "any", Category: CategoryScalar},
	} {
		r.RegisterFunction(fn)
	}

	anyType := []string{"string", "number", "ip", "boolean", "timestamp"}
	for _, op := range []OperatorDefinition{
		{Symbol: "=", ApplicableTypes: anyType, Category: "comparison"},
		{Symbol: "!=", ApplicableTypes: anyType, Category: "comparison"},
		{Symbol: ">", ApplicableTypes: []string{"number", "timestamp"}, Category: "comparison"},
		{Symbol: ">=", ApplicableTypes: []string{"number", "timestamp"}, Category: "comparison"},
		{Symbol: "<", ApplicableTypes: []string{"number", "timestamp"}, Category: "comparison"},
		{Symbol: "<=", ApplicableTypes: []string{"number", "timestamp"}, Category: "comparison"},
		{Symbol: "~", ApplicableTypes: []string{"string", "ip"}, Category: "pattern"},
		{Symbol: "!~", ApplicableTypes: []string{"string", "ip"}, Category: "pattern"},
		{Symbol: "in", ApplicableTypes: anyType, Category: "membership"},
	} {
		r.RegisterOperator(op)
	}

	for _, pc := range []PipeCommandDefinition{
		{Name: "last", Description: "Restrict results to a trailing time window"},
		{Name: "dedup", Description: "Drop events duplicated on the given fields"},
		{Name: "eval", Description: "Compute a derived field"},
		{Name: "agg", Description: "Aggregate events, optionally grouped with BY"},
		{Name: "order", Description: "Sort results with ORDER BY"},
		{Name: "where", Description: "Filter piped results"},
		{Name: "regex", Description: "Filter by regular expression"},
	} {
		r.RegisterPipeCommand(pc)
	}

	for _, kw := range []KeywordDefinition{
		{Word: "select", Category: CategoryClause},
		{Word: "from", Category: CategoryClause},
		{Word: "join", Category: CategoryClause},
		{Word: "on", Category: CategoryClause},
		{Word: "where", Category: CategoryClause},
		{Word: "group", Category: CategoryClause},
		{Word: "having", Category: CategoryClause},
		{Word: "order", Category: CategoryClause},
		{Word: "by", Category: CategoryClause},
		{Word: "as", Category: CategoryClause},
		{Word: "asc", Category: CategoryClause},
		{Word: "desc", Category: CategoryClause},
		{Word: "and", Category: CategoryLogical},
		{Word: "or", Category: CategoryLogical},
		{Word: "not", Category: CategoryLogical},
		{Word: "in", Category: CategoryLogical},
		{Word: "null", Category: CategoryLiteral},
		{Word: "true", Category: CategoryLiteral},
		{Word: "false", Category: CategoryLiteral},
		{Word: "seconds", Category: CategoryTimeUnit},
		{Word: "minutes", Category: CategoryTimeUnit},
		{Word: "hours", Category: CategoryTimeUnit},
		{Word: "days", Category: CategoryTimeUnit},
		{Word: "weeks", Category: CategoryTimeUnit},
	} {
		r.RegisterKeyword(kw)
	}

	return r
}
