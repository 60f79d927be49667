package batch

import (
	"context"
	"errors"
	"strings"

	"github.com/shibukawa/cgeltree"
	"github.com/shibukawa/cgeltree/cgel"
	"github.com/shibukawa/cgeltree/rewriter"
	"github.com/shibukawa/cgeltree/source"
	"github.com/shibukawa/cgeltree/store"
	"github.com/shibukawa/cgeltree/texparser"
)

// Tex2Cgel converts parsetree sources into bracket-notation records. A
// dialect set on the unit overrides the converter's. With spans every
// record is followed by its span table.
func Tex2Cgel(conv *texparser.Converter, spans bool) ConvertFunc {
	return func(_ context.Context, unit *source.Unit) []store.Record {
		c := conv
		if unit.Dialect != "" {
			override := *conv
			override.Dialect = unit.Dialect
			c = &override
		}

		results := c.ConvertSource(unit.ID, unit.Text)
		records := make([]store.Record, 0, len(results))

		for i := range results {
			result := &results[i]

			output := result.Record()
			if spans {
				output += result.SpanRecord()
			}

			records = append(records, store.Record{
				Source:   unit.ID,
				Index:    result.Index,
				TreeID:   result.TreeID,
				Sentence: result.Sentence,
				Output:   output,
				Err:      result.Err,
			})
		}

		return records
	}
}

// Cgel2Tex converts bracket-notation records into parsetree environments.
// Trees are redrawn canonically before rewriting unless raw is set, in which
// case the text is rewritten as read.
func Cgel2Tex(rw *rewriter.Rewriter, raw bool) ConvertFunc {
	return func(_ context.Context, unit *source.Unit) []store.Record {
		var records []store.Record

		index := 0

		for t, err := range cgel.Trees(strings.NewReader(unit.Text)) {
			rec := store.Record{Source: unit.ID, Index: index}
			index++

			if err != nil {
				rec.TreeID = failedTreeID(err)
				rec.Err = err
				records = append(records, rec)

				continue
			}

			text := t.Draw()
			if raw {
				text = t.Raw()
			}

			rec.TreeID = t.SentID
			rec.Sentence = t.Sent
			rec.Output, rec.Err = rw.Rewrite(t.SentID, text)
			records = append(records, rec)
		}

		return records
	}
}

func failedTreeID(err error) string {
	var treeErr *cgeltree.TreeError
	if errors.As(err, &treeErr) {
		return treeErr.TreeID
	}

	return ""
}
