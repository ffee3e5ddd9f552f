package handler

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"restaurantapi/internal/http/middleware"
	"restaurantapi/internal/model"
	"restaurantapi/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewAppConfig returns the Fiber settings the routes depend on. Matching is case sensitive
// so the fixed-cuisine path only catches its exact text and other casings reach :cuisine.
func NewAppConfig(log *zap.Logger) fiber.Config {
	return fiber.Config{
		CaseSensitive: true,
		ErrorHandler:  ErrorHandler(log),
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// The literal fixed-cuisine route is registered ahead of /restaurants/:cuisine so it stays reachable.
func RegisterRoutes(app *fiber.App, db Pinger, svc service.RestaurantService, log *zap.Logger) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/restaurants", ListRestaurants(svc, log))
	app.Get("/restaurants/cuisine/:cuisine", ListByCuisine(svc, log))
	app.Get("/restaurants/"+url.PathEscape(svc.FixedCuisine()), ListFixedCuisine(svc, log))
	app.Get("/restaurants/:cuisine", ListByCuisineExcludingCity(svc, log))
}

// HealthCheck godoc
// @Summary Store connectivity check
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe, 200 while the process is serving
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListRestaurants godoc
// @Summary List restaurants
// @Description Without sortBy every record is returned as stored. With sortBy the records are reduced to restaurant_id, cuisine, name and city and ordered by restaurant_id (DESC descending, anything else ascending).
// @Produce json
// @Param sortBy query string false "ASC or DESC"
// @Success 200 {array} model.Restaurant
// @Failure 500 {object} errorPayload
// @Router /restaurants [get]
func ListRestaurants(svc service.RestaurantService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order := service.ParseSortOrder(c.Query("sortBy"))
		res, err := svc.List(c.UserContext(), order)
		return respond(c, log, res, err)
	}
}

// ListByCuisine godoc
// @Summary List restaurants of a cuisine
// @Produce json
// @Param cuisine path string true "Cuisine"
// @Success 200 {array} model.Restaurant
// @Failure 500 {object} errorPayload
// @Router /restaurants/cuisine/{cuisine} [get]
func ListByCuisine(svc service.RestaurantService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListByCuisine(c.UserContext(), pathParam(c, "cuisine"))
		return respond(c, log, res, err)
	}
}

// ListByCuisineExcludingCity godoc
// @Summary List cuisine, name and city of a cuisine outside the excluded city, ordered by name
// @Produce json
// @Param cuisine path string true "Cuisine"
// @Success 200 {array} model.Restaurant
// @Failure 500 {object} errorPayload
// @Router /restaurants/{cuisine} [get]
func ListByCuisineExcludingCity(svc service.RestaurantService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListByCuisineExcludingCity(c.UserContext(), pathParam(c, "cuisine"))
		return respond(c, log, res, err)
	}
}

// ListFixedCuisine godoc
// @Summary List cuisine, name and city of the fixed cuisine outside the excluded city, ordered by name
// @Description The path segment is FIXED_CUISINE (default Delicatessen) and is matched case sensitively.
// @Produce json
// @Success 200 {array} model.Restaurant
// @Failure 500 {object} errorPayload
// @Router /restaurants/Delicatessen [get]
func ListFixedCuisine(svc service.RestaurantService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListFixedCuisine(c.UserContext())
		return respond(c, log, res, err)
	}
}

// respond writes the listing, or a QUERY_FAILED envelope when the store rejected the query.
func respond(c *fiber.Ctx, log *zap.Logger, res []model.Restaurant, err error) error {
	if err != nil {
		middleware.RequestLogger(c, log).Error("restaurant query failed",
			zap.String("route", c.Route().Path),
			zap.Error(err),
		)
		return writeError(c, fiber.StatusInternalServerError, "QUERY_FAILED", "failed to query restaurants")
	}
	if res == nil {
		res = []model.Restaurant{}
	}
	return c.JSON(res)
}

// pathParam returns the percent-decoded route parameter, or the raw value if it is not valid escaping.
func pathParam(c *fiber.Ctx, key string) string {
	raw := strings.Clone(c.Params(key))
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
