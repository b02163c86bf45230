package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	producterrors "github.com/abgdnv/gocrud/internal/product/errors"
	"github.com/abgdnv/gocrud/internal/product/store"
	"github.com/abgdnv/gocrud/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  store.Product
	products []store.Product
	error    error

	calledID     int64
	calledFields store.Product
}

func (m *mockProductService) FindAll(_ context.Context) ([]store.Product, error) {
	return m.products, m.error
}

func (m *mockProductService) FindByID(_ context.Context, id int64) (store.Product, error) {
	m.calledID = id
	return m.product, m.error
}

func (m *mockProductService) Create(_ context.Context, fields store.Product) (store.Product, error) {
	m.calledFields = fields
	return m.product, m.error
}

func (m *mockProductService) Update(_ context.Context, id int64, fields store.Product) (store.Product, error) {
	m.calledID = id
	m.calledFields = fields
	return m.product, m.error
}

func (m *mockProductService) DeleteByID(_ context.Context, id int64) (store.Product, error) {
	m.calledID = id
	return m.product, m.error
}

func newRouter(svc *mockProductService) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewAPI(svc, logger.Discard()))
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func Test_ProductAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: mockProductService{
				products: []store.Product{{"id": int64(1), "name": "A"}, {"id": int64(2), "name": "B"}},
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"name":"A"},{"id":2,"name":"B"}]`,
		},
		{
			name:         "Success - no products",
			mockService:  mockProductService{products: []store.Product{}},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to fetch products"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newRouter(&tc.mockService)
			// when
			rr := serve(h, http.MethodGet, "/products", "")
			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedID   int64
		expectedCode int
		expectedType string
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockProductService{product: store.Product{"id": int64(1), "name": "A"}},
			productID:    "1",
			expectedID:   1,
			expectedCode: http.StatusOK,
			expectedType: "application/json",
			expectedBody: `{"id":1,"name":"A"}`,
		},
		{
			name:         "Success - decimal form of the id",
			mockService:  mockProductService{product: store.Product{"id": int64(1)}},
			productID:    "1.0",
			expectedID:   1,
			expectedCode: http.StatusOK,
			expectedType: "application/json",
			expectedBody: `{"id":1}`,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: producterrors.ErrProductNotFound},
			productID:    "999",
			expectedID:   999,
			expectedCode: http.StatusNotFound,
			expectedType: "text/plain; charset=utf-8",
			expectedBody: "Product not found",
		},
		{
			name:         "Error - id that can never match",
			mockService:  mockProductService{product: store.Product{"id": int64(1)}},
			productID:    "abc",
			expectedCode: http.StatusNotFound,
			expectedType: "text/plain; charset=utf-8",
			expectedBody: "Product not found",
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			productID:    "2",
			expectedID:   2,
			expectedCode: http.StatusInternalServerError,
			expectedType: "application/json",
			expectedBody: `{"error":"Failed to retrieve product"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newRouter(&tc.mockService)
			// when
			rr := serve(h, http.MethodGet, "/products/"+tc.productID, "")
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.Equal(t, tc.expectedType, rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody, rr.Body.String(), "response body should match")
			assert.Equal(t, tc.expectedID, tc.mockService.calledID)
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	testCases := []struct {
		name           string
		mockService    mockProductService
		requestBody    string
		expectedCode   int
		expectedBody   string
		expectedFields store.Product
	}{
		{
			name:           "Success - product created",
			mockService:    mockProductService{product: store.Product{"id": int64(1700000000000), "name": "B"}},
			requestBody:    `{"name":"B"}`,
			expectedCode:   http.StatusCreated,
			expectedBody:   `{"id":1700000000000,"name":"B"}`,
			expectedFields: store.Product{"name": "B"},
		},
		{
			name:           "Success - empty body",
			mockService:    mockProductService{product: store.Product{"id": int64(5)}},
			requestBody:    "",
			expectedCode:   http.StatusCreated,
			expectedBody:   `{"id":5}`,
			expectedFields: store.Product{},
		},
		{
			name:         "Error - malformed body",
			requestBody:  `{"name":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - array body",
			requestBody:  `[{"name":"B"}]`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:           "Error - service error",
			mockService:    mockProductService{error: errors.New("service unavailable")},
			requestBody:    `{"name":"B"}`,
			expectedCode:   http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to create product"}`,
			expectedFields: store.Product{"name": "B"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newRouter(&tc.mockService)
			// when
			rr := serve(h, http.MethodPost, "/products", tc.requestBody)
			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			assert.Equal(t, tc.expectedFields, tc.mockService.calledFields)
		})
	}
}

func Test_ProductAPI_Update(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		mockService  mockProductService
		productID    string
		requestBody  string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - put",
			method:       http.MethodPut,
			mockService:  mockProductService{product: store.Product{"id": int64(1), "name": "A", "price": 20}},
			productID:    "1",
			requestBody:  `{"price":20}`,
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"A","price":20}`,
		},
		{
			name:         "Success - patch",
			method:       http.MethodPatch,
			mockService:  mockProductService{product: store.Product{"id": int64(1), "name": "A", "price": 20}},
			productID:    "1",
			requestBody:  `{"price":20}`,
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"A","price":20}`,
		},
		{
			name:         "Error - product not found",
			method:       http.MethodPut,
			mockService:  mockProductService{error: producterrors.ErrProductNotFound},
			productID:    "42",
			requestBody:  `{"price":20}`,
			expectedCode: http.StatusNotFound,
			expectedBody: "Product not found",
		},
		{
			name:         "Error - malformed body",
			method:       http.MethodPatch,
			productID:    "1",
			requestBody:  `not json`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - unparseable id wins over body",
			method:       http.MethodPut,
			productID:    "x1",
			requestBody:  `not json`,
			expectedCode: http.StatusNotFound,
			expectedBody: "Product not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newRouter(&tc.mockService)
			// when
			rr := serve(h, tc.method, "/products/"+tc.productID, tc.requestBody)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if rr.Code == http.StatusOK {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				assert.Equal(t, store.Product{"price": json.Number("20")}, tc.mockService.calledFields)
				return
			}
			assert.Equal(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - returns removed product",
			mockService:  mockProductService{product: store.Product{"id": int64(1), "name": "A"}},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: `{"id":1,"name":"A"}`,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: producterrors.ErrProductNotFound},
			productID:    "1",
			expectedCode: http.StatusNotFound,
			expectedBody: "Product not found",
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("boom")},
			productID:    "1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Failed to delete product"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newRouter(&tc.mockService)
			// when
			rr := serve(h, http.MethodDelete, "/products/"+tc.productID, "")
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.Equal(t, tc.expectedBody, rr.Body.String())
			assert.Equal(t, int64(1), tc.mockService.calledID)
		})
	}
}

func Test_ProductAPI_HealthCheck(t *testing.T) {
	rr := serve(newRouter(&mockProductService{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
