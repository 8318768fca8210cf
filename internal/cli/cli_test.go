package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/mealdb/internal/config"
)

const apiPrefix = "/api/json/v1/1/"

// newAPI serves canned bodies keyed by "path?rawquery" relative to the API prefix.
func newAPI(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path[len(apiPrefix):]
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			http.Error(w, "unknown route "+key, http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{
		MealDBBaseURL: srv.URL + apiPrefix,
		MealDBTimeout: 2 * time.Second,
	}
	root := New(cfg, io.Discard).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSearchPrintsMeals(t *testing.T) {
	srv := newAPI(t, map[string]string{
		"search.php?s=Arrabiata": `{"meals":[{"strMeal":"Arrabiata","idMeal":"52771"}]}`,
	})

	out, err := execute(t, srv, "search", "Arrabiata")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"idMeal":"52771","strMeal":"Arrabiata"}]`, out)
}

func TestLookupPrintsNullWhenNothingMatches(t *testing.T) {
	srv := newAPI(t, map[string]string{
		"lookup.php?i=9999999": `{"meals":null}`,
	})

	out, err := execute(t, srv, "lookup", "9999999")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestLookupRejectsNonNumericID(t *testing.T) {
	srv := newAPI(t, nil)

	_, err := execute(t, srv, "lookup", "abc")
	assert.ErrorContains(t, err, "invalid meal id")
}

func TestLetterRequiresSingleCharacter(t *testing.T) {
	srv := newAPI(t, nil)

	_, err := execute(t, srv, "letter", "ab")
	assert.Error(t, err)
}

func TestListCategoriesPrintsNames(t *testing.T) {
	srv := newAPI(t, map[string]string{
		"list.php?c=list": `{"meals":[{"strCategory":"Beef"},{"strCategory":"Chicken"}]}`,
	})

	out, err := execute(t, srv, "list", "categories")
	require.NoError(t, err)
	assert.JSONEq(t, `["Beef","Chicken"]`, out)
}

func TestListAreasPrintsNames(t *testing.T) {
	srv := newAPI(t, map[string]string{
		"list.php?a=list": `{"meals":[{"strArea":"Canadian"},{"strArea":"Greek"}]}`,
	})

	out, err := execute(t, srv, "list", "areas")
	require.NoError(t, err)
	assert.JSONEq(t, `["Canadian","Greek"]`, out)
}

func TestFilterByAreaPrintsSummaries(t *testing.T) {
	srv := newAPI(t, map[string]string{
		"filter.php?a=Canadian": `{"meals":[{"strMeal":"BeaverTails","strMealThumb":"https://x/t.jpg","idMeal":"52928"}]}`,
	})

	out, err := execute(t, srv, "filter", "--area", "Canadian")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"idMeal":"52928","strMeal":"BeaverTails","strMealThumb":"https://x/t.jpg"}]`, out)
}

func TestFilterRequiresExactlyOneFlag(t *testing.T) {
	srv := newAPI(t, nil)

	_, err := execute(t, srv, "filter")
	assert.Error(t, err)

	_, err = execute(t, srv, "filter", "--area", "Canadian", "--category", "Seafood")
	assert.Error(t, err)
}

func TestTransportFailureIsAnError(t *testing.T) {
	srv := newAPI(t, map[string]string{})

	out, err := execute(t, srv, "random")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestWriteResultEncodesIndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, []string{"a"}, nil))
	assert.Equal(t, "[\n  \"a\"\n]\n", buf.String())
}
