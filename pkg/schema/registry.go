package schema

import (
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry stores schema definitions keyed case-insensitively.
//
// Reads are lock-shared; mutation takes the write lock, which gives a
// multi-threaded host the single-writer guarantee the core assumes. The
// lexer, normalizer, analyzer, and validator only ever read.
type Registry struct {
	mu           sync.RWMutex
	fields       map[string]FieldDefinition
	functions    map[string]FunctionDefinition
	operators    map[string]OperatorDefinition
	pipeCommands map[string]PipeCommandDefinition
	keywords     map[string]KeywordDefinition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		fields:       make(map[string]FieldDefinition),
		functions:    make(map[string]FunctionDefinition),
		operators:    make(map[string]OperatorDefinition),
		pipeCommands: make(map[string]PipeCommandDefinition),
		keywords:     make(map[string]KeywordDefinition),
	}
}

func key(name string) string {
	return strings.ToLower(name)
}

// RegisterField adds a field definition. Returns false if a field with the
// same case-insensitive name already exists.
func (r *Registry) RegisterField(def FieldDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Name)
	if _, ok := r.fields[k]; ok {
		return false
	}
	r.fields[k] = def
	return true
}

// UpdateField replaces an existing field definition. Returns false if the
// field is not registered.
func (r *Registry) UpdateField(def FieldDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Name)
	if _, ok := r.fields[k]; !ok {
		return false
	}
	r.fields[k] = def
	return true
}

// UnregisterField removes a field definition. Returns false if the field is
// not registered.
func (r *Registry) UnregisterField(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(name)
	if _, ok := r.fields[k]; !ok {
		return false
	}
	delete(r.fields, k)
	return true
}

// Field looks up a field definition by case-insensitive name.
func (r *Registry) Field(name string) (FieldDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.fields[key(name)]
	return def, ok
}

// HasField reports whether a field is registered.
func (r *Registry) HasField(name string) bool {
	_, ok := r.Field(name)
	return ok
}

// Fields returns all field definitions sorted by name.
func (r *Registry) Fields() []FieldDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FieldDefinition, 0, len(r.fields))
	for _, def := range r.fields {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Name) < key(out[j].Name) })
	return out
}

// RegisterFunction adds a function definition. Returns false if a function
// with the same case-insensitive name already exists.
func (r *Registry) RegisterFunction(def FunctionDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Name)
	if _, ok := r.functions[k]; ok {
		return false
	}
	r.functions[k] = def
	return true
}

// UnregisterFunction removes a function definition. Returns false if the
// function is not registered.
func (r *Registry) UnregisterFunction(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(name)
	if _, ok := r.functions[k]; !ok {
		return false
	}
	delete(r.functions, k)
	return true
}

// Function looks up a function definition by case-insensitive name.
func (r *Registry) Function(name string) (FunctionDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.functions[key(name)]
	return def, ok
}

// HasFunction reports whether a function is registered.
func (r *Registry) HasFunction(name string) bool {
	_, ok := r.Function(name)
	return ok
}

// IsAggregateFunction reports whether name is a registered aggregate function.
func (r *Registry) IsAggregateFunction(name string) bool {
	def, ok := r.Function(name)
	return ok && def.IsAggregate()
}

// Functions returns all function definitions sorted by name.
func (r *Registry) Functions() []FunctionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FunctionDefinition, 0, len(r.functions))
	for _, def := range r.functions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Name) < key(out[j].Name) })
	return out
}

// RegisterOperator adds an operator definition keyed by symbol. Returns
// false if the symbol is already registered.
func (r *Registry) RegisterOperator(def OperatorDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Symbol)
	if _, ok := r.operators[k]; ok {
		return false
	}
	r.operators[k] = def
	return true
}

// Operator looks up an operator definition by symbol.
func (r *Registry) Operator(symbol string) (OperatorDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.operators[key(symbol)]
	return def, ok
}

// Operators returns all operator definitions sorted by symbol.
func (r *Registry) Operators() []OperatorDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]OperatorDefinition, 0, len(r.operators))
	for _, def := range r.operators {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Symbol) < key(out[j].Symbol) })
	return out
}

// RegisterPipeCommand adds a pipe command definition. Returns false if the
// command is already registered.
func (r *Registry) RegisterPipeCommand(def PipeCommandDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Name)
	if _, ok := r.pipeCommands[k]; ok {
		return false
	}
	r.pipeCommands[k] = def
	return true
}

// HasPipeCommand reports whether a pipe command is registered.
func (r *Registry) HasPipeCommand(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pipeCommands[key(name)]
	return ok
}

// PipeCommands returns all pipe command definitions sorted by name.
func (r *Registry) PipeCommands() []PipeCommandDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PipeCommandDefinition, 0, len(r.pipeCommands))
	for _, def := range r.pipeCommands {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Name) < key(out[j].Name) })
	return out
}

// RegisterKeyword adds a keyword definition. Returns false if the word is
// already registered.
func (r *Registry) RegisterKeyword(def KeywordDefinition) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(def.Word)
	if _, ok := r.keywords[k]; ok {
		return false
	}
	r.keywords[k] = def
	return true
}

// IsTimeUnit reports whether word is a registered time-unit keyword.
func (r *Registry) IsTimeUnit(word string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.keywords[key(word)]
	return ok && def.Category == CategoryTimeUnit
}

// Keywords returns all keyword definitions sorted by word.
func (r *Registry) Keywords() []KeywordDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]KeywordDefinition, 0, len(r.keywords))
	for _, def := range r.keywords {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Word) < key(out[j].Word) })
	return out
}

// KeywordsByCategory returns keyword definitions in the given category,
// sorted by word.
func (r *Registry) KeywordsByCategory(category string) []KeywordDefinition {
	var out []KeywordDefinition
	for _, def := range r.Keywords() {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Import merges a snapshot into the registry, replacing entries that share
// a case-insensitive key. Existing entries absent from the snapshot are
// kept.
func (r *Registry) Import(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range snap.Fields {
		r.fields[key(def.Name)] = def
	}
	for _, def := range snap.Functions {
		r.functions[key(def.Name)] = def
	}
	for _, def := range snap.Operators {
		r.operators[key(def.Symbol)] = def
	}
	for _, def := range snap.PipeCommands {
		r.pipeCommands[key(def.Name)] = def
	}
	for _, def := range snap.Keywords {
		r.keywords[key(def.Word)] = def
	}
}

// Replace swaps the registry contents for the snapshot atomically.
func (r *Registry) Replace(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields = make(map[string]FieldDefinition, len(snap.Fields))
	r.functions = make(map[string]FunctionDefinition, len(snap.Functions))
	r.operators = make(map[string]OperatorDefinition, len(snap.Operators))
	r.pipeCommands = make(map[string]PipeCommandDefinition, len(snap.PipeCommands))
	r.keywords = make(map[string]KeywordDefinition, len(snap.Keywords))
	for _, def := range snap.Fields {
		r.fields[key(def.Name)] = def
	}
	for _, def := range snap.Functions {
		r.functions[key(def.Name)] = def
	}
	for _, def := range snap.Operators {
		r.operators[key(def.Symbol)] = def
	}
	for _, def := range snap.PipeCommands {
		r.pipeCommands[key(def.Name)] = def
	}
	for _, def := range snap.Keywords {
		r.keywords[key(def.Word)] = def
	}
}

// Export returns a snapshot of the registry with all lists sorted.
func (r *Registry) Export() Snapshot {
	return Snapshot{
		Fields:       r.Fields(),
		Functions:    r.Functions(),
		Operators:    r.Operators(),
		PipeCommands: r.PipeCommands(),
		Keywords:     r.Keywords(),
	}
}

// ParseSnapshot decodes a YAML schema document.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// MarshalSnapshot encodes a snapshot as YAML.
func MarshalSnapshot(snap Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}
