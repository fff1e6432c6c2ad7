package features

import (
	"fmt"

	"github.com/souqrisk/souqrisk/internal/common"
)

// SchemaVersion changes whenever the numeric column set, its order, or the
// lexical feature naming changes. A persisted model from another version
// cannot be scored against.
const SchemaVersion = 1

// numericColumns is the canonical numeric feature order. Downstream
// consumers index by position, so this list must never be reordered between
// a model's training and its use; add new columns only together with a
// SchemaVersion bump.
var numericColumns = []string{
	"title_len", "desc_len",
	"title_caps_ratio", "desc_caps_ratio",
	"title_emoji_count", "desc_emoji_count",
	"title_spam_kw", "desc_spam_kw",
	"desc_repeated_word_score",
	"has_phone", "has_email",
	"posted_days_ago",
	"seller_is_business",
	"price_aed",
	"price_zscore",
	"price_too_low_flag",
	"price_too_high_flag",
}

// NumericColumns returns a copy of the canonical numeric column names.
func NumericColumns() []string {
	out := make([]string, len(numericColumns))
	copy(out, numericColumns)
	return out
}

// Schema is the named, versioned feature layout persisted alongside a
// trained model: numeric columns first, then one tfidf_-prefixed column per
// vocabulary term.
type Schema struct {
	Numeric []string `msgpack:"numeric"`
	Lexical []string `msgpack:"lexical"`
	Version int      `msgpack:"version"`
}

// NewSchema builds the schema for the current numeric layout and the given
// vectorizer vocabulary.
func NewSchema(vocabulary []string) Schema {
	lexical := make([]string, len(vocabulary))
	for i, term := range vocabulary {
		lexical[i] = "tfidf_" + term
	}
	return Schema{
		Version: SchemaVersion,
		Numeric: NumericColumns(),
		Lexical: lexical,
	}
}

// Names returns all feature names in matrix column order.
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Numeric)+len(s.Lexical))
	out = append(out, s.Numeric...)
	out = append(out, s.Lexical...)
	return out
}

// Dims returns the total feature-vector width.
func (s Schema) Dims() int {
	return len(s.Numeric) + len(s.Lexical)
}

// Check verifies that a persisted schema matches the layout this build
// would produce, failing fast before any coefficients are misaligned.
func (s Schema) Check(persisted Schema) error {
	if persisted.Version != s.Version {
		return fmt.Errorf("%w: schema version %d, this build expects %d",
			common.ErrSchemaMismatch, persisted.Version, s.Version)
	}
	if err := equalNames(s.Numeric, persisted.Numeric, "numeric"); err != nil {
		return err
	}
	return equalNames(s.Lexical, persisted.Lexical, "lexical")
}

func equalNames(want, got []string, kind string) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: %s column count %d, want %d",
			common.ErrSchemaMismatch, kind, len(got), len(want))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("%w: %s column %d is %q, want %q",
				common.ErrSchemaMismatch, kind, i, got[i], want[i])
		}
	}
	return nil
}
