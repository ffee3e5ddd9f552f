package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurantapi/internal/http/middleware"
	"restaurantapi/internal/model"
	"restaurantapi/internal/repository/memory"
	repoMocks "restaurantapi/internal/repository/mocks"
	"restaurantapi/internal/service"
	serviceMocks "restaurantapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func decodeRestaurants(t *testing.T, resp *http.Response) []model.Restaurant {
	t.Helper()
	var out []model.Restaurant
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthCheck(t *testing.T) {
	db := new(repoMocks.MockRestaurantRepository)

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		db.On("Ping", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		db.On("Ping", mock.Anything).Return(errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	db.AssertExpectations(t)
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListRestaurants(t *testing.T) {
	mockSvc := new(serviceMocks.MockRestaurantService)
	app := fiber.New()
	app.Get("/restaurants", ListRestaurants(mockSvc, zaptest.NewLogger(t)))

	t.Run("plain listing", func(t *testing.T) {
		expected := []model.Restaurant{{ID: "65f0c0ffee", Name: "A", Cuisine: "Italian", City: "Queens", Address: &model.Address{Street: "Main St"}}}
		mockSvc.On("List", mock.Anything, service.SortNone).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, expected, decodeRestaurants(t, resp))
		mockSvc.AssertExpectations(t)
	})

	t.Run("sortBy selects direction", func(t *testing.T) {
		for query, order := range map[string]service.SortOrder{
			"DESC":  service.SortDesc,
			"desc":  service.SortDesc,
			"ASC":   service.SortAsc,
			"other": service.SortAsc,
		} {
			mockSvc.On("List", mock.Anything, order).Return([]model.Restaurant{}, nil).Once()

			req := httptest.NewRequest(http.MethodGet, "/restaurants?sortBy="+query, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode, "sortBy=%s", query)
		}
		mockSvc.AssertExpectations(t)
	})

	t.Run("projected fields only", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.SortAsc).
			Return([]model.Restaurant{{RestaurantID: "1", Name: "A", Cuisine: "Italian", City: "Queens"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants?sortBy=ASC", nil)
		resp, _ := app.Test(req)

		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[{"restaurant_id":"1","name":"A","cuisine":"Italian","city":"Queens"}]`, string(body))
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.SortNone).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", string(body))
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.SortNone).Return(nil, service.ErrQueryFailure).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "QUERY_FAILED", body.Error.Code)
		assert.NotEmpty(t, body.Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestListByCuisine(t *testing.T) {
	mockSvc := new(serviceMocks.MockRestaurantService)
	app := fiber.New()
	app.Get("/restaurants/cuisine/:cuisine", ListByCuisine(mockSvc, zap.NewNop()))

	t.Run("success", func(t *testing.T) {
		expected := []model.Restaurant{{Name: "A", Cuisine: "Bakery"}}
		mockSvc.On("ListByCuisine", mock.Anything, "Bakery").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/cuisine/Bakery", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, expected, decodeRestaurants(t, resp))
		mockSvc.AssertExpectations(t)
	})

	t.Run("escaped parameter is decoded", func(t *testing.T) {
		mockSvc.On("ListByCuisine", mock.Anything, "Ice Cream").Return([]model.Restaurant{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/cuisine/Ice%20Cream", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListByCuisine", mock.Anything, "Bakery").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/cuisine/Bakery", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListByCuisineExcludingCity(t *testing.T) {
	mockSvc := new(serviceMocks.MockRestaurantService)
	app := fiber.New()
	app.Get("/restaurants/:cuisine", ListByCuisineExcludingCity(mockSvc, zap.NewNop()))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("ListByCuisineExcludingCity", mock.Anything, "Italian").
			Return([]model.Restaurant{{Name: "A", Cuisine: "Italian", City: "Queens"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/Italian", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[{"name":"A","cuisine":"Italian","city":"Queens"}]`, string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListByCuisineExcludingCity", mock.Anything, "Italian").Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/Italian", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func newRoutedApp(t *testing.T, svc service.RestaurantService, db Pinger) *fiber.App {
	log := zaptest.NewLogger(t)
	app := fiber.New(NewAppConfig(log))
	RegisterRoutes(app, db, svc, log)
	return app
}

func TestRouting(t *testing.T) {
	mockSvc := new(serviceMocks.MockRestaurantService)
	mockSvc.On("FixedCuisine").Return("Delicatessen")
	app := newRoutedApp(t, mockSvc, new(repoMocks.MockRestaurantRepository))

	t.Run("fixed cuisine literal wins over parameter route", func(t *testing.T) {
		mockSvc.On("ListFixedCuisine", mock.Anything).Return([]model.Restaurant{{Name: "Katz's"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/Delicatessen", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertCalled(t, "ListFixedCuisine", mock.Anything)
		mockSvc.AssertNotCalled(t, "ListByCuisineExcludingCity", mock.Anything, mock.Anything)
	})

	t.Run("other casings of the fixed cuisine use the parameter route", func(t *testing.T) {
		for _, cuisine := range []string{"delicatessen", "DELICATESSEN"} {
			mockSvc.On("ListByCuisineExcludingCity", mock.Anything, cuisine).Return([]model.Restaurant{}, nil).Once()

			req := httptest.NewRequest(http.MethodGet, "/restaurants/"+cuisine, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode, cuisine)
			mockSvc.AssertCalled(t, "ListByCuisineExcludingCity", mock.Anything, cuisine)
		}
		mockSvc.AssertNumberOfCalls(t, "ListFixedCuisine", 1)
	})

	t.Run("cuisine segment is not a cuisine parameter", func(t *testing.T) {
		mockSvc.On("ListByCuisine", mock.Anything, "Bakery").Return([]model.Restaurant{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/restaurants/cuisine/Bakery", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertCalled(t, "ListByCuisine", mock.Anything, "Bakery")
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Every restaurant route is read-only
		req := httptest.NewRequest(http.MethodPost, "/restaurants", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}

func TestRouting_StoreFailureOnEveryRoute(t *testing.T) {
	mockSvc := new(serviceMocks.MockRestaurantService)
	mockSvc.On("FixedCuisine").Return("Delicatessen")
	mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, service.ErrQueryFailure)
	mockSvc.On("ListByCuisine", mock.Anything, mock.Anything).Return(nil, service.ErrQueryFailure)
	mockSvc.On("ListByCuisineExcludingCity", mock.Anything, mock.Anything).Return(nil, service.ErrQueryFailure)
	mockSvc.On("ListFixedCuisine", mock.Anything).Return(nil, service.ErrQueryFailure)
	app := newRoutedApp(t, mockSvc, new(repoMocks.MockRestaurantRepository))

	for _, path := range []string{
		"/restaurants",
		"/restaurants?sortBy=DESC",
		"/restaurants/cuisine/Italian",
		"/restaurants/Italian",
		"/restaurants/Delicatessen",
	} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			envelope, ok := body["error"].(map[string]any)
			require.True(t, ok, "error field missing")
			assert.Equal(t, "QUERY_FAILED", envelope["code"])
			assert.NotEmpty(t, envelope["message"])
		})
	}
}

func TestScenarios(t *testing.T) {
	opts := service.Options{ExcludedCity: "Brooklyn", FixedCuisine: "Delicatessen"}

	t.Run("cuisine with city exclusion", func(t *testing.T) {
		repo := memory.NewRestaurantMemory(
			model.Restaurant{Name: "A", Cuisine: "Italian", City: "Queens"},
			model.Restaurant{Name: "B", Cuisine: "Italian", City: "Brooklyn"},
		)
		app := newRoutedApp(t, service.NewRestaurantService(repo, opts), repo)

		req := httptest.NewRequest(http.MethodGet, "/restaurants/Italian", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[{"name":"A","cuisine":"Italian","city":"Queens"}]`, string(body))
	})

	t.Run("empty collection", func(t *testing.T) {
		repo := memory.NewRestaurantMemory()
		app := newRoutedApp(t, service.NewRestaurantService(repo, opts), repo)

		for _, path := range []string{
			"/restaurants",
			"/restaurants?sortBy=ASC",
			"/restaurants/cuisine/Italian",
			"/restaurants/Italian",
			"/restaurants/Delicatessen",
		} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode, path)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, "[]", string(body), path)
		}
	})

	t.Run("fixed cuisine literal is matched exactly", func(t *testing.T) {
		repo := memory.NewRestaurantMemory(
			model.Restaurant{Name: "Ben's", Cuisine: "Delicatessen", City: "Queens"},
			model.Restaurant{Name: "Lower", Cuisine: "delicatessen", City: "Queens"},
		)
		app := newRoutedApp(t, service.NewRestaurantService(repo, opts), repo)

		req := httptest.NewRequest(http.MethodGet, "/restaurants/delicatessen", nil)
		resp, _ := app.Test(req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `[{"name":"Lower","cuisine":"delicatessen","city":"Queens"}]`, string(body))

		req = httptest.NewRequest(http.MethodGet, "/restaurants/Delicatessen", nil)
		resp, _ = app.Test(req)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ = io.ReadAll(resp.Body)
		assert.JSONEq(t, `[{"name":"Ben's","cuisine":"Delicatessen","city":"Queens"}]`, string(body))
	})

	t.Run("fixed cuisine sorted by name outside excluded city", func(t *testing.T) {
		repo := memory.NewRestaurantMemory(
			model.Restaurant{Name: "Sarge's", Cuisine: "Delicatessen", City: "Manhattan"},
			model.Restaurant{Name: "Mill Basin Deli", Cuisine: "Delicatessen", City: "Brooklyn"},
			model.Restaurant{Name: "Ben's Best", Cuisine: "Delicatessen", City: "Queens"},
			model.Restaurant{Name: "Angelo's", Cuisine: "Italian", City: "Queens"},
		)
		app := newRoutedApp(t, service.NewRestaurantService(repo, opts), repo)

		req := httptest.NewRequest(http.MethodGet, "/restaurants/Delicatessen", nil)
		resp, _ := app.Test(req)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decodeRestaurants(t, resp)
		require.Len(t, got, 2)
		assert.Equal(t, "Ben's Best", got[0].Name)
		assert.Equal(t, "Sarge's", got[1].Name)
		for _, r := range got {
			assert.Empty(t, r.ID)
			assert.NotEqual(t, "Brooklyn", r.City)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	app := fiber.New(NewAppConfig(log))
	app.Use(middleware.RequestID(log))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("cursor exhausted")
	})

	t.Run("unexpected cause is logged and hidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-7")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(body), "cursor exhausted")

		var res errorPayload
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "rid-7", res.RequestID)
		assert.Equal(t, "INTERNAL_ERROR", res.Error.Code)

		entries := logs.FilterMessage("unhandled request error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "rid-7", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "cursor exhausted", entries[0].ContextMap()["error"])
	})

	t.Run("routing errors are not logged", func(t *testing.T) {
		before := logs.Len()
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, before, logs.Len())
	})
}
