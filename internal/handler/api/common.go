package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"paybridge/internal/models"
	"paybridge/internal/repository"
	"paybridge/internal/tappay"
)

func successResponse(c echo.Context, msg string, obj interface{}) error {
	return c.JSON(http.StatusOK, models.APIResponse{
		Status: true,
		Msg:    msg,
		Obj:    obj,
	})
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, models.APIResponse{
		Status: false,
		Msg:    msg,
		Obj:    nil,
	})
}

// gatewayErrorResponse maps client errors onto HTTP statuses: bad input is
// the caller's fault, everything past the payload builder is an upstream
// failure.
func gatewayErrorResponse(c echo.Context, err error) error {
	var verr *tappay.ValidationError
	if errors.As(err, &verr) {
		return errorResponse(c, http.StatusBadRequest, verr.Message)
	}
	var serr *tappay.SignatureError
	if errors.As(err, &serr) {
		return errorResponse(c, http.StatusBadGateway, "gateway rejected credentials")
	}
	var terr *tappay.TransportError
	if errors.As(err, &terr) {
		return errorResponse(c, http.StatusBadGateway, "gateway unavailable")
	}
	return errorResponse(c, http.StatusInternalServerError, "internal error")
}

// getStringField gets a string field from the body map.
func getStringField(body map[string]interface{}, key string) string {
	if v, ok := body[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Handle numbers that should be strings
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("%.0f", f)
		}
	}
	return ""
}

// getIntField gets an int field from the body map.
func getIntField(body map[string]interface{}, key string, defaultVal int) int {
	if v, ok := body[key]; ok {
		switch t := v.(type) {
		case float64:
			return int(t)
		case int:
			return t
		case string:
			if i, err := strconv.Atoi(t); err == nil {
				return i
			}
		}
	}
	return defaultVal
}

// getIntPtrField gets an optional int field from the body map. Returns nil
// when the field is absent so explicit zero survives.
func getIntPtrField(body map[string]interface{}, key string) *int {
	if v, ok := body[key]; ok {
		if f, ok := v.(float64); ok {
			n := int(f)
			return &n
		}
	}
	return nil
}

// getInt64PtrField gets an optional int64 field from the body map.
func getInt64PtrField(body map[string]interface{}, key string) *int64 {
	if v, ok := body[key]; ok {
		if f, ok := v.(float64); ok {
			n := int64(f)
			return &n
		}
	}
	return nil
}

// getBoolField gets an optional bool field from the body map. Returns nil when
// the field is absent so explicit false survives.
func getBoolField(body map[string]interface{}, key string) *bool {
	if v, ok := body[key]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

// getMapField gets an object field from the body map.
func getMapField(body map[string]interface{}, key string) map[string]interface{} {
	if v, ok := body[key]; ok {
		if m, ok := v.(map[string]interface{}); ok {
			return m
		}
	}
	return nil
}

// Repos bundles the repositories needed by API handlers.
type Repos struct {
	Payment *repository.PaymentRecordRepository
}
