package snowflake

import (
	"context"
	"fmt"

	"reviewlens/pkg/errors"
)

// SentimentFunctionName is the warehouse-side scalar function the report
// queries call to label review text.
const SentimentFunctionName = "ANALYZE_SENTIMENT"

// sentimentHandler is the Python body of the warehouse UDF. The scoring
// itself is delegated to the textblob library inside the warehouse; this
// tool only registers the function and never computes polarity locally.
// Bucketing: polarity > 0 positive, == 0 neutral, < 0 negative.
const sentimentHandler = `from textblob import TextBlob

def analyze_sentiment(text):
    if text is None:
        return 'neutral'
    polarity = TextBlob(text).sentiment.polarity
    if polarity > 0:
        return 'positive'
    elif polarity == 0:
        return 'neutral'
    else:
        return 'negative'
`

// CreateSentimentFunction registers (or replaces) the sentiment UDF in the
// configured database and schema.
func (s *Service) CreateSentimentFunction(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s.%s.%s(TEXT_VALUE STRING)
RETURNS STRING
LANGUAGE PYTHON
RUNTIME_VERSION = '3.10'
PACKAGES = ('textblob')
HANDLER = 'analyze_sentiment'
AS
$$
%s$$`,
		s.config.Database,
		s.config.Schema,
		SentimentFunctionName,
		sentimentHandler,
	)

	if err := s.Exec(ctx, stmt); err != nil {
		return errors.Wrap(err, errors.ErrCodeSQLExecution, "Failed to create sentiment function").
			WithContext("function", SentimentFunctionName).
			WithSuggestions(
				"Verify the role can create functions in the target schema",
				"Check that Python UDFs are enabled for your account",
			)
	}
	return nil
}
