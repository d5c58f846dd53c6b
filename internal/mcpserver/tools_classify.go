package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagraph/classifier"
	"github.com/erraggy/schemagraph/walker"
)

type classifyInput struct {
	Corpus  corpusInput `json:"corpus"             jsonschema:"The schema corpus to analyze"`
	Kind    string      `json:"kind,omitempty"     jsonschema:"Filter by type kind: struct, enum, discriminated_union, newtype, collection, map, alias"`
	Match   string      `json:"match,omitempty"    jsonschema:"Filter by identifier (supports * and ? glob, e.g. Pet* or *Config)"`
	Detail  bool        `json:"detail,omitempty"   jsonschema:"Return full classification payloads (fields, variants, enum members) instead of summaries"`
	GroupBy string      `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: kind"`
	Limit   int         `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100; 25 in detail mode)"`
	Offset  int         `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type classificationSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier,omitempty"`
	Kind       string `json:"kind"`
	Synthetic  bool   `json:"synthetic,omitempty"`
}

type fieldSummary struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Required   bool   `json:"required,omitempty"`
	Indirected bool   `json:"indirected,omitempty"`
}

type variantSummary struct {
	Name    string `json:"name"`
	Payload string `json:"payload,omitempty"`
}

type classificationDetail struct {
	ID                       string           `json:"id"`
	Identifier               string           `json:"identifier,omitempty"`
	Kind                     string           `json:"kind"`
	Emit                     string           `json:"emit"`
	Synthetic                bool             `json:"synthetic,omitempty"`
	Parent                   string           `json:"parent,omitempty"`
	Fields                   []fieldSummary   `json:"fields,omitempty"`
	Discriminator            string           `json:"discriminator,omitempty"`
	DiscriminatorSynthesized bool             `json:"discriminator_synthesized,omitempty"`
	Variants                 []variantSummary `json:"variants,omitempty"`
	Enum                     []string         `json:"enum,omitempty"`
	Wrapped                  string           `json:"wrapped,omitempty"`
	Element                  string           `json:"element,omitempty"`
	Ordered                  bool             `json:"ordered,omitempty"`
	Value                    string           `json:"value,omitempty"`
	AliasOf                  string           `json:"alias_of,omitempty"`
}

type classifyOutput struct {
	Total     int                     `json:"total"`
	Matched   int                     `json:"matched"`
	Returned  int                     `json:"returned"`
	Summaries []classificationSummary `json:"classifications,omitempty"`
	Details   []classificationDetail  `json:"details,omitempty"`
	Groups    []groupCount            `json:"groups,omitempty"`
}

func handleClassify(_ context.Context, _ *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, classifyOutput, error) {
	if err := validateGlobPattern(input.Match); err != nil {
		return errResult(err), classifyOutput{}, nil
	}
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"kind"}); err != nil {
		return errResult(err), classifyOutput{}, nil
	}
	kindFilter, filterSet, err := parseTypeKind(input.Kind)
	if err != nil {
		return errResult(err), classifyOutput{}, nil
	}

	result, err := input.Corpus.resolve()
	if err != nil {
		return errResult(err), classifyOutput{}, nil
	}
	collected, err := walker.CollectClassifications(result)
	if err != nil {
		return errResult(err), classifyOutput{}, nil
	}

	filtered := filterClassifications(collected, input, kindFilter, filterSet)

	// group_by: aggregate by kind and return counts.
	if input.GroupBy != "" {
		groups := groupAndSort(filtered, func(info *walker.ClassificationInfo) []string {
			return []string{info.Classification.Kind.String()}
		})
		paged := paginate(groups, input.Offset, input.Limit)
		output := classifyOutput{
			Total:    len(collected.All),
			Matched:  len(filtered),
			Returned: len(paged),
			Groups:   paged,
		}
		return nil, output, nil
	}

	if input.Detail {
		limit := detailLimit(input.Limit)
		paged := paginate(filtered, input.Offset, limit)
		output := classifyOutput{
			Total:    len(collected.All),
			Matched:  len(filtered),
			Returned: len(paged),
			Details:  makeSlice[classificationDetail](len(paged)),
		}
		for _, info := range paged {
			output.Details = append(output.Details, detailClassification(info))
		}
		return nil, output, nil
	}

	paged := paginate(filtered, input.Offset, input.Limit)
	output := classifyOutput{
		Total:     len(collected.All),
		Matched:   len(filtered),
		Returned:  len(paged),
		Summaries: makeSlice[classificationSummary](len(paged)),
	}
	for _, info := range paged {
		cl := info.Classification
		output.Summaries = append(output.Summaries, classificationSummary{
			ID:         cl.ID,
			Identifier: info.Identifier,
			Kind:       cl.Kind.String(),
			Synthetic:  cl.Synthetic,
		})
	}
	return nil, output, nil
}

// filterClassifications applies kind and match filters in emission order.
// ByKind preserves that order within each kind, so a kind filter is a map
// lookup rather than a scan.
func filterClassifications(collected *walker.ClassificationCollector, input classifyInput, kind classifier.TypeKind, kindSet bool) []*walker.ClassificationInfo {
	selected := collected.All
	if kindSet {
		selected = collected.ByKind[kind]
	}
	if input.Match == "" {
		return selected
	}
	var filtered []*walker.ClassificationInfo
	for _, info := range selected {
		if !matchGlobName(info.Identifier, input.Match) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

func detailClassification(info *walker.ClassificationInfo) classificationDetail {
	cl := info.Classification
	d := classificationDetail{
		ID:                       cl.ID,
		Identifier:               info.Identifier,
		Kind:                     cl.Kind.String(),
		Emit:                     cl.Emit.String(),
		Synthetic:                cl.Synthetic,
		Parent:                   cl.Parent,
		Discriminator:            cl.Discriminator,
		DiscriminatorSynthesized: cl.DiscriminatorSynthesized,
		AliasOf:                  cl.AliasOf,
	}
	for _, f := range cl.Fields {
		d.Fields = append(d.Fields, fieldSummary{
			Name:       f.Name,
			Type:       f.Type.String(),
			Required:   f.Required,
			Indirected: f.Indirected,
		})
	}
	for _, v := range cl.Variants {
		vs := variantSummary{Name: v.Name}
		if v.HasPayload() {
			vs.Payload = v.Payload.String()
		}
		d.Variants = append(d.Variants, vs)
	}
	for _, e := range cl.Enum {
		d.Enum = append(d.Enum, e.Value)
	}
	if !cl.Wrapped.Opaque() {
		d.Wrapped = cl.Wrapped.String()
	}
	if cl.Kind == classifier.KindCollection {
		d.Element = cl.Element.String()
		d.Ordered = cl.Ordered
	}
	if cl.Kind == classifier.KindMap {
		d.Value = cl.Value.String()
	}
	return d
}

// parseTypeKind maps a kind label to its TypeKind. The boolean reports
// whether a filter was requested at all.
func parseTypeKind(label string) (classifier.TypeKind, bool, error) {
	if label == "" {
		return 0, false, nil
	}
	for k := classifier.KindStruct; k <= classifier.KindAlias; k++ {
		if strings.EqualFold(k.String(), label) {
			return k, true, nil
		}
	}
	return 0, false, fmt.Errorf("invalid kind %q; valid values: struct, enum, discriminated_union, newtype, collection, map, alias", label)
}
