package chi

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/aadb-project/aadb/internal/domain/batch"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/query"
	"github.com/aadb-project/aadb/internal/domain/search/request"
)

// listQuery is the query string of every ranked listing.
type listQuery struct {
	Search  string
	Field   string
	Sort    string
	Order   string
	Page    int
	Limit   int
	Filters map[string]string
}

type queryParam struct {
	name string
	dest any
}

func bindQuery(r *http.Request, params ...queryParam) error {
	q := r.URL.Query()
	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, false, p.name, q, p.dest); err != nil {
			return fmt.Errorf("invalid query parameter %s: %w", p.name, err)
		}
	}
	return nil
}

// bindListQuery reads search, field, sort, order, page and limit, plus one exact
// filter per registry field. Parameters outside the registry are ignored.
func bindListQuery(r *http.Request, reg field.Registry) (listQuery, error) {
	var lq listQuery
	err := bindQuery(r,
		queryParam{"search", &lq.Search},
		queryParam{"field", &lq.Field},
		queryParam{"sort", &lq.Sort},
		queryParam{"order", &lq.Order},
		queryParam{"page", &lq.Page},
		queryParam{"limit", &lq.Limit},
	)
	if err != nil {
		return listQuery{}, err
	}

	q := r.URL.Query()
	for _, name := range reg.Names() {
		if v := q.Get(name); v != "" {
			if lq.Filters == nil {
				lq.Filters = make(map[string]string)
			}
			lq.Filters[name] = v
		}
	}
	return lq, nil
}

func (lq listQuery) request(reg field.Registry, lim request.Limits) request.List {
	params := query.Params{Search: lq.Search, Field: lq.Field, Filters: lq.Filters}
	return request.NewList(reg, params, lq.Sort, lq.Order, lq.Page, lq.Limit, lim)
}

// decodeJSON reads a JSON body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

type importBody struct {
	Rows []map[string]any `json:"rows"`
}

// importRows accepts either a text/csv body or JSON {"rows": [{column: value}]}.
// JSON cell values that are not strings are rendered as text; nulls are dropped.
func importRows(r *http.Request) ([]map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "text/csv" {
		rows, err := batch.ReadCSV(r.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid csv body: %w", err)
		}
		return rows, nil
	}

	var body importBody
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}
	rows := make([]map[string]string, len(body.Rows))
	for i, raw := range body.Rows {
		row := make(map[string]string, len(raw))
		for k, v := range raw {
			switch tv := v.(type) {
			case nil:
			case string:
				row[k] = tv
			case float64:
				row[k] = strconv.FormatFloat(tv, 'f', -1, 64)
			default:
				row[k] = fmt.Sprint(tv)
			}
		}
		rows[i] = row
	}
	return rows, nil
}
