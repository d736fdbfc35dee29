package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/te-mata-wananga/apparel-order-api/internal/models"
	"github.com/te-mata-wananga/apparel-order-api/internal/payment"
	"github.com/te-mata-wananga/apparel-order-api/internal/service"
	"github.com/te-mata-wananga/apparel-order-api/pkg/logger"
)

var testPlanDates = [3]string{"13/08/2025", "27/08/2025", "10/09/2025"}

type stubNotifier struct {
	fail bool
}

func (s *stubNotifier) SendConfirmation(ctx context.Context, order *models.Order, schedule payment.Schedule, pdfBytes []byte) error {
	if s.fail {
		return errors.New("delivery rejected")
	}
	return nil
}

func newTestHandler(notifier service.Notifier, production bool) *OrderHandler {
	log := logger.New("error")
	orderService := service.NewOrderService(nil, notifier, nil, testPlanDates, log)
	return NewOrderHandler(orderService, production, log)
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"kaimahiName":    "Aroha Smith",
		"employeeNumber": "E1001",
		"campus":         "Te Awamutu",
		"email":          "aroha@example.com",
		"items":          []map[string]interface{}{{"name": "T-Shirt", "size": "M", "quantity": 2, "price": 25.00}},
		"total":          50.00,
		"paymentType":    "plan",
	}
}

func TestOrderHandler_SubmitOrder(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		notifierFails  bool
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:           "successful order",
			requestBody:    validBody(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["success"] != true {
					t.Error("success = false, want true")
				}
				if resp["orderNumber"] == "" || resp["orderNumber"] == nil {
					t.Error("orderNumber is empty")
				}
				if resp["message"] != "Order processed successfully" {
					t.Errorf("message = %v", resp["message"])
				}
			},
		},
		{
			name: "echoes supplied order number",
			requestBody: func() map[string]interface{} {
				body := validBody()
				body["orderNumber"] = "TMW-CUSTOM-42"
				return body
			}(),
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["orderNumber"] != "TMW-CUSTOM-42" {
					t.Errorf("orderNumber = %v, want TMW-CUSTOM-42", resp["orderNumber"])
				}
			},
		},
		{
			name: "missing field named in error",
			requestBody: func() map[string]interface{} {
				body := validBody()
				delete(body, "campus")
				return body
			}(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["success"] != false {
					t.Error("success = true, want false")
				}
				errMsg, _ := resp["error"].(string)
				if !strings.Contains(errMsg, "campus") {
					t.Errorf("error = %q, want it to name campus", errMsg)
				}
			},
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "notifier failure",
			requestBody:    validBody(),
			notifierFails:  true,
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, resp map[string]interface{}) {
				if resp["success"] != false {
					t.Error("success = true, want false")
				}
				if resp["error"] != "Failed to send confirmation email" {
					t.Errorf("error = %v", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&stubNotifier{fail: tt.notifierFails}, true)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("failed to marshal request: %v", err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.SubmitOrder(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.checkResponse != nil {
				var resp map[string]interface{}
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestOrderHandler_MethodsAndPreflight(t *testing.T) {
	handler := newTestHandler(&stubNotifier{}, true)

	// Mount behind the same routing and CORS setup the server uses
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Post("/submit-order", handler.SubmitOrder)

	t.Run("preflight is answered permissively", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/submit-order", nil)
		req.Header.Set("Origin", "https://order-form.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK && w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 2xx", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
			t.Error("missing Access-Control-Allow-Origin header")
		}
		if w.Body.Len() != 0 {
			t.Errorf("preflight body = %q, want empty", w.Body.String())
		}
	})

	t.Run("other methods get 405", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/submit-order", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
		}
	})
}

func TestOrderHandler_DetailsGatedByEnvironment(t *testing.T) {
	body, _ := json.Marshal(validBody())

	tests := []struct {
		name        string
		production  bool
		wantDetails bool
	}{
		{"production hides details", true, false},
		{"development exposes details", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&stubNotifier{fail: true}, tt.production)

			req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.SubmitOrder(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
			}

			var resp map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			_, hasDetails := resp["details"]
			if hasDetails != tt.wantDetails {
				t.Errorf("details present = %v, want %v", hasDetails, tt.wantDetails)
			}
		})
	}
}
