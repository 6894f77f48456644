package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQueryDefaults(t *testing.T) {
	t.Parallel()

	params := FromQuery(url.Values{})
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestFromQueryParsesValues(t *testing.T) {
	t.Parallel()

	params := FromQuery(url.Values{"skip": {"20"}, "limit": {"50"}})
	assert.Equal(t, 20, params.Skip)
	assert.Equal(t, 50, params.Limit)
}

func TestFromQueryMalformedFallsBack(t *testing.T) {
	t.Parallel()

	params := FromQuery(url.Values{"skip": {"abc"}, "limit": {"-3"}})
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestNormalizeLimitBounds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, MaxLimit, NormalizeLimit(500))
	assert.Equal(t, 25, NormalizeLimit(25))
}
