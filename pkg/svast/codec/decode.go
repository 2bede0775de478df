package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"svdata-hq/svast/pkg/svast/concrete"
	sverrors "svdata-hq/svast/pkg/svast/errors"
)

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// decoder validates one document. Problems are collected in errs; a record
// with any problem below it yields no node, so nothing partial escapes.
type decoder struct {
	codec  *Codec
	source string
	data   []byte
	errs   *sverrors.ErrorList
}

func (d *decoder) decode() concrete.Node {
	root := sverrors.Location{Source: d.source, Path: "$"}

	if d.codec.maxDocumentSize > 0 && len(d.data) > d.codec.maxDocumentSize {
		d.errs.AddError(sverrors.KindTooLarge,
			fmt.Sprintf("document size %d exceeds maximum %d bytes", len(d.data), d.codec.maxDocumentSize), root)
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(d.data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		d.syntaxError(err, root)
		return nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		d.errs.AddError(sverrors.KindSyntax, "empty document", root)
		return nil
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
	case err != nil:
		d.syntaxError(err, root)
		return nil
	default:
		d.errs.AddError(sverrors.KindSyntax, "unexpected content after the document", root.At(extra.Line, extra.Column))
		return nil
	}

	return d.record(doc.Content[0], root, nil, 1)
}

func (d *decoder) syntaxError(err error, root sverrors.Location) {
	loc := root
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		loc = loc.At(line, 1)
	}
	d.errs.Add(&sverrors.DecodeError{
		Kind:       sverrors.KindSyntax,
		Message:    fmt.Sprintf("document parsing failed: %v", err),
		Location:   loc,
		Suggestion: "Check JSON/YAML syntax (brackets, commas, quotes)",
		Err:        err,
	})
}

// record decodes a node record at loc. accepts restricts the admissible
// variants; nil admits any production (document root).
func (d *decoder) record(y *yaml.Node, loc sverrors.Location, accepts *concrete.Category, depth int) concrete.Node {
	loc = loc.At(y.Line, y.Column)

	if depth > d.codec.maxDepth {
		d.errs.AddError(sverrors.KindDepthExceeded,
			fmt.Sprintf("nesting depth exceeds maximum %d", d.codec.maxDepth), loc)
		return nil
	}
	if y.Kind == yaml.AliasNode {
		d.errs.AddError(sverrors.KindAlias, "aliases are not allowed", loc)
		return nil
	}
	if y.Kind != yaml.MappingNode {
		d.errs.AddError(sverrors.KindNotARecord,
			fmt.Sprintf("expected a node record, found %s", describe(y)), loc)
		return nil
	}

	before := d.errs.Count()
	values, keys := d.members(y, loc)
	if d.errs.Count() > before {
		return nil
	}

	kindNode, ok := values[kindKey]
	if !ok {
		d.errs.AddErrorWithSuggestion(sverrors.KindMissingKind, `record has no "kind"`, loc,
			sverrors.SuggestMissingField(kindKey, `"SourceText"`))
		return nil
	}
	if !isString(kindNode) {
		d.errs.AddError(sverrors.KindNotText,
			fmt.Sprintf(`"kind" must be a string, found %s`, describe(kindNode)),
			loc.Child(kindKey).At(kindNode.Line, kindNode.Column))
		return nil
	}

	kind := concrete.Kind(kindNode.Value)
	prod, ok := concrete.Lookup(kind)
	if !ok {
		d.errs.AddErrorWithSuggestion(sverrors.KindUnknownKind,
			fmt.Sprintf("unknown kind %q", kind), loc, sverrors.SuggestKind(string(kind), kindNames(concrete.Kinds())))
		return nil
	}
	if accepts != nil && !accepts.AdmitsKind(kind) {
		d.errs.AddErrorWithSuggestion(sverrors.KindVariantNotAllowed,
			fmt.Sprintf("%s is not allowed here (expected %s)", kind, accepts.Name()), loc,
			sverrors.SuggestVariant(string(kind), kindNames(accepts.Kinds())))
		return nil
	}

	fieldNames := make([]string, len(prod.Fields))
	for i, fs := range prod.Fields {
		fieldNames[i] = fs.Name
	}
	for _, k := range keys {
		if k.Value == kindKey {
			continue
		}
		if _, known := prod.Field(k.Value); !known {
			d.errs.AddErrorWithSuggestion(sverrors.KindUnknownField,
				fmt.Sprintf("%s has no field %q", kind, k.Value),
				loc.Child(k.Value).At(k.Line, k.Column),
				sverrors.SuggestFieldName(k.Value, fieldNames))
		}
	}

	fields := make([]concrete.Field, len(prod.Fields))
	for i, fs := range prod.Fields {
		fields[i] = d.field(kind, fs, values[fs.Name], loc, depth)
	}
	if d.errs.Count() > before {
		return nil
	}

	n, err := concrete.Rebuild(kind, fields)
	if err != nil {
		d.errs.Add(&sverrors.DecodeError{
			Kind:     sverrors.KindInvalidTree,
			Message:  err.Error(),
			Location: loc,
			Err:      err,
		})
		return nil
	}
	return n
}

// members indexes the pairs of a mapping, reporting non-string and
// duplicate keys.
func (d *decoder) members(y *yaml.Node, loc sverrors.Location) (map[string]*yaml.Node, []*yaml.Node) {
	values := make(map[string]*yaml.Node, len(y.Content)/2)
	keys := make([]*yaml.Node, 0, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		if !isString(k) {
			d.errs.AddError(sverrors.KindNotText,
				fmt.Sprintf("field names must be strings, found %s", describe(k)), loc.At(k.Line, k.Column))
			continue
		}
		if _, dup := values[k.Value]; dup {
			d.errs.AddError(sverrors.KindDuplicateField,
				fmt.Sprintf("field %q appears more than once", k.Value), loc.Child(k.Value).At(k.Line, k.Column))
			continue
		}
		values[k.Value] = v
		keys = append(keys, k)
	}
	return values, keys
}

func (d *decoder) field(kind concrete.Kind, fs concrete.FieldSpec, v *yaml.Node, parent sverrors.Location, depth int) concrete.Field {
	out := concrete.Field{Name: fs.Name, Kind: fs.Kind}
	loc := parent.Child(fs.Name)

	if v == nil {
		// Omitted optionals read as absent; everything else must be spelled
		// out, including empty lists.
		if fs.Kind != concrete.FieldOptionalNode && fs.Kind != concrete.FieldOptionalText {
			d.errs.AddErrorWithSuggestion(sverrors.KindMissingField,
				fmt.Sprintf("%s requires field %q", kind, fs.Name), parent,
				sverrors.SuggestMissingField(fs.Name, example(fs)))
		}
		return out
	}
	loc = loc.At(v.Line, v.Column)

	if v.Kind == yaml.AliasNode {
		d.errs.AddError(sverrors.KindAlias, "aliases are not allowed", loc)
		return out
	}

	if isNull(v) {
		switch fs.Kind {
		case concrete.FieldOptionalNode, concrete.FieldOptionalText:
			return out
		case concrete.FieldList:
			d.errs.AddError(sverrors.KindNotASequence,
				fmt.Sprintf("%s.%s must be a sequence, found null", kind, fs.Name), loc)
		default:
			d.errs.AddErrorWithSuggestion(sverrors.KindMissingField,
				fmt.Sprintf("%s.%s is required but null", kind, fs.Name), loc,
				sverrors.SuggestMissingField(fs.Name, example(fs)))
		}
		return out
	}

	switch fs.Kind {
	case concrete.FieldNode, concrete.FieldOptionalNode:
		accepts := fs.Accepts
		out.Node = d.record(v, loc, &accepts, depth+1)
		out.Present = out.Node != nil

	case concrete.FieldList:
		if v.Kind != yaml.SequenceNode {
			d.errs.AddError(sverrors.KindNotASequence,
				fmt.Sprintf("%s.%s must be a sequence, found %s", kind, fs.Name, describe(v)), loc)
			return out
		}
		accepts := fs.Accepts
		out.List = make([]concrete.Node, 0, len(v.Content))
		for i, item := range v.Content {
			if n := d.record(item, loc.Index(i), &accepts, depth+1); n != nil {
				out.List = append(out.List, n)
			}
		}
		out.Present = true

	case concrete.FieldText, concrete.FieldOptionalText:
		if !isString(v) {
			d.errs.AddError(sverrors.KindNotText,
				fmt.Sprintf("%s.%s must be a string, found %s", kind, fs.Name, describe(v)), loc)
			return out
		}
		if err := fs.Lexical(v.Value); err != nil {
			d.errs.Add(&sverrors.DecodeError{
				Kind:     sverrors.KindLexical,
				Message:  fmt.Sprintf("%s.%s: %v", kind, fs.Name, err),
				Location: loc,
				Err:      err,
			})
			return out
		}
		out.Text, out.Present = v.Value, true
	}
	return out
}

func isString(y *yaml.Node) bool {
	return y.Kind == yaml.ScalarNode && y.ShortTag() == "!!str"
}

func isNull(y *yaml.Node) bool {
	return y.Kind == yaml.ScalarNode && y.ShortTag() == "!!null"
}

func describe(y *yaml.Node) string {
	switch y.Kind {
	case yaml.MappingNode:
		return "a record"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	case yaml.ScalarNode:
		switch y.ShortTag() {
		case "!!str":
			return fmt.Sprintf("string %q", y.Value)
		case "!!null":
			return "null"
		case "!!int", "!!float":
			return fmt.Sprintf("number %s", y.Value)
		case "!!bool":
			return fmt.Sprintf("boolean %s", y.Value)
		}
		return fmt.Sprintf("scalar %q", y.Value)
	}
	return "an empty value"
}

func example(fs concrete.FieldSpec) string {
	switch fs.Kind {
	case concrete.FieldList:
		return "[]"
	case concrete.FieldNode:
		if kinds := fs.Accepts.Kinds(); len(kinds) > 0 {
			return fmt.Sprintf(`{"kind": %q, ...}`, kinds[0])
		}
	}
	return ""
}

func kindNames(kinds []concrete.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
