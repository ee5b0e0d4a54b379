package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/formulas"
	"github.com/zephyrtronium/formulas/internal/service"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEvaluate(t *testing.T) {
	h := service.New(formulas.DefaultLocale).Routes()
	rec := do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "2+3*4"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var f service.Formula
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	require.NotEmpty(t, f.ID)
	require.Equal(t, "2+3*4", f.Expression)
	require.Equal(t, 14.0, f.Result)
	require.Len(t, f.Infix, 5)
	require.Equal(t, service.Token{Kind: "Operator", Text: "*", Start: 3, End: 4}, f.Infix[3])
	texts := make([]string, len(f.Postfix))
	for i, tok := range f.Postfix {
		texts[i] = tok.Text
	}
	require.Equal(t, []string{"2", "3", "4", "*", "+"}, texts)

	rec = do(t, h, http.MethodGet, "/api/v1/formulas/"+f.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var g service.Formula
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	require.Equal(t, f, g)
}

func TestEvaluateLocale(t *testing.T) {
	h := service.New(formulas.DefaultLocale).Routes()
	rec := do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "1,5*2", "locale": "de"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var f service.Formula
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	require.Equal(t, 3.0, f.Result)
	require.Equal(t, "1,5", f.Infix[0].Text)

	rec = do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "1", "locale": "not a locale!"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		kind   string
		start  int
		length int
	}{
		{"json", `{"expression": `, http.StatusBadRequest, "", -1, 0},
		{"empty", `{"expression": ""}`, http.StatusUnprocessableEntity, "EmptyInput", -1, 0},
		{"syntax", `{"expression": "1**2"}`, http.StatusUnprocessableEntity, "Syntax", 2, 1},
		{"brackets", `{"expression": "(1+2"}`, http.StatusUnprocessableEntity, "UnbalancedBrackets", -1, 0},
		{"divide", `{"expression": "10/0"}`, http.StatusUnprocessableEntity, "DivideByZero", 2, 1},
		{"operand", `{"expression": "1.2.3"}`, http.StatusUnprocessableEntity, "InvalidOperand", 0, 5},
	}
	h := service.New(formulas.DefaultLocale).Routes()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/evaluate", c.body)
			require.Equal(t, c.status, rec.Code)
			var e service.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			require.NotEmpty(t, e.Error)
			require.Equal(t, c.kind, e.Kind)
			if c.start < 0 {
				require.Nil(t, e.Start)
				require.Nil(t, e.Length)
				return
			}
			require.NotNil(t, e.Start)
			require.NotNil(t, e.Length)
			require.Equal(t, c.start, *e.Start)
			require.Equal(t, c.length, *e.Length)
		})
	}
	// Failed evaluations are not stored.
	rec := do(t, h, http.MethodGet, "/api/v1/formulas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Formulas []service.Formula `json:"formulas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Empty(t, list.Formulas)
}

func TestEvaluateOverflow(t *testing.T) {
	h := service.New(formulas.DefaultLocale).Routes()
	big := strings.Repeat("9", 300)
	for _, src := range []string{big + "*" + big, "-" + big + "*" + big} {
		rec := do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "`+src+`"}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var e service.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
		require.NotEmpty(t, e.Error)
	}

	// Nothing was stored, and the list still encodes.
	rec := do(t, h, http.MethodGet, "/api/v1/formulas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Formulas []service.Formula `json:"formulas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Empty(t, list.Formulas)

	rec = do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "1+1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/v1/formulas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Formulas, 1)
}

func TestList(t *testing.T) {
	h := service.New(formulas.DefaultLocale).Routes()
	srcs := []string{"1+1", "2*2", "3-3", "4/4"}
	for _, src := range srcs {
		rec := do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "`+src+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/api/v1/formulas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Formulas []service.Formula `json:"formulas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Formulas, len(srcs))
	for i, f := range list.Formulas {
		require.Equal(t, srcs[i], f.Expression)
	}
}

func TestTree(t *testing.T) {
	h := service.New(formulas.DefaultLocale).Routes()
	rec := do(t, h, http.MethodPost, "/api/v1/evaluate", `{"expression": "2*(1-4)"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var f service.Formula
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))

	rec = do(t, h, http.MethodGet, "/api/v1/formulas/"+f.ID+"/tree.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(rec.Body.Bytes()))
	require.Equal(t, "Formula", doc.Root().Tag)
	require.Equal(t, "-6", doc.Root().SelectAttrValue("result", ""))
	require.Len(t, doc.FindElements("//Operator"), 2)
}

func TestNotFound(t *testing.T) {
	h := service.New(formulas.DefaultLocale).Routes()
	for _, path := range []string{"/api/v1/formulas/nope", "/api/v1/formulas/nope/tree.xml"} {
		rec := do(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
