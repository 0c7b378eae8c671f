package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase describes one table-driven handler test.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           interface{}
	Headers        map[string]string
	ExpectedStatus int
	Setup          func(t *testing.T)
	Validate       func(t *testing.T, w *httptest.ResponseRecorder)
}

// RunHTTPTestCase executes a single test case against the engine.
func RunHTTPTestCase(t *testing.T, engine *gin.Engine, tc HTTPTestCase) {
	t.Helper()

	if tc.Setup != nil {
		tc.Setup(t)
	}

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}

	req := httptest.NewRequest(tc.Method, tc.Path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "unexpected status for %s %s", tc.Method, tc.Path)
	}
	if tc.Validate != nil {
		tc.Validate(t, w)
	}
}

// RunHTTPTestCases executes a table of test cases as subtests.
func RunHTTPTestCases(t *testing.T, engine *gin.Engine, cases []HTTPTestCase) {
	t.Helper()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, engine, tc)
		})
	}
}

// ToJSONReader marshals v and returns it as a request body reader.
func ToJSONReader(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal request body")
	return bytes.NewReader(data)
}

// JSONResponse unmarshals the recorded response body into a map.
func JSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response")
	return result
}

// JSONResponseAs unmarshals the recorded response body into T.
func JSONResponseAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result), "Failed to parse JSON response")
	return result
}

// AssertSuccessResponse asserts the envelope carries success=true.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := JSONResponse(t, w)
	assert.Equal(t, true, resp["success"], "expected success response, body: %s", w.Body.String())
	return resp
}

// AssertErrorResponse asserts the envelope carries success=false with
// the given error code.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) map[string]interface{} {
	t.Helper()
	resp := JSONResponse(t, w)
	assert.Equal(t, false, resp["success"], "expected error response, body: %s", w.Body.String())
	if expectedCode != "" {
		errObj, ok := resp["error"].(map[string]interface{})
		require.True(t, ok, "error response missing error object, body: %s", w.Body.String())
		assert.Equal(t, expectedCode, errObj["code"])
	}
	return resp
}

// AuthHeader builds a bearer token header map for protected routes.
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
