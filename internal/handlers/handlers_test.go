package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"foodapp/internal/database"
	"foodapp/internal/database/inmemory"
	"foodapp/internal/images"
	"foodapp/internal/middleware"
	"foodapp/internal/models"
	"foodapp/internal/notifier"
	"foodapp/internal/orders"
	"foodapp/internal/payment/paymenttest"
)

const (
	testSecret        = "handlers-test-secret"
	testWebhookSecret = "whsec_handlers_test"
)

type recordingMailer struct {
	mu       sync.Mutex
	messages []notifier.Message
}

func (m *recordingMailer) Send(_ context.Context, msg notifier.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) last(t *testing.T) notifier.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.messages)
	return m.messages[len(m.messages)-1]
}

type testApp struct {
	router   *gin.Engine
	store    *database.Store
	provider *paymenttest.Provider
	mailer   *recordingMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		router:   gin.New(),
		store:    inmemory.NewStore(),
		provider: paymenttest.New(testWebhookSecret),
		mailer:   &recordingMailer{},
	}
	svc := orders.NewService(app.store, app.provider, orders.Config{
		Currency:         "inr",
		FrontendURL:      "http://localhost:5173",
		AllowedCountries: []string{"IN"},
	})
	RegisterRoutes(app.router, Dependencies{
		Store:    app.store,
		Orders:   svc,
		Uploader: images.NewLocal(t.TempDir(), "/public/uploads"),
		Mailer:   app.mailer,
		Auth: AuthConfig{
			Secret:          testSecret,
			TokenTTL:        time.Hour,
			VerificationTTL: 24 * time.Hour,
			ResetTTL:        time.Hour,
			FrontendURL:     "http://localhost:5173",
		},
	})
	return app
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) seedUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Fullname: "Test " + email, Email: email, PasswordHash: string(hash)}
	require.NoError(t, a.store.Users.Create(context.Background(), user))
	return user
}

func (a *testApp) seedRestaurant(t *testing.T, owner primitive.ObjectID) (models.Restaurant, models.Menu, models.Menu) {
	t.Helper()
	ctx := context.Background()

	restaurant := models.Restaurant{User: owner, RestaurantName: "Napoli", City: "Pune", Country: "India", DeliveryTime: 30, Cuisines: models.StringList{"Italian"}}
	require.NoError(t, a.store.Restaurants.Create(ctx, &restaurant))

	pizza := models.Menu{Restaurant: restaurant.ID, Name: "Margherita", Price: 500}
	soda := models.Menu{Restaurant: restaurant.ID, Name: "Lime soda", Price: 300}
	require.NoError(t, a.store.Menus.Create(ctx, &pizza))
	require.NoError(t, a.store.Menus.Create(ctx, &soda))
	return restaurant, pizza, soda
}

func sessionCookie(t *testing.T, userID primitive.ObjectID) *http.Cookie {
	t.Helper()
	token, err := middleware.IssueToken(userID, testSecret, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.TokenCookie, Value: token}
}

func jsonRequest(t *testing.T, method, target string, body any, cookie *http.Cookie) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, fileField, filename string, cookie *http.Cookie) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func cookieFrom(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSignupVerifyLoginAndCheckAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/signup", map[string]string{
		"fullname": "Asha Rao", "email": "Asha@Example.com", "password": "secret123", "contact": "9999999999",
	}, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := cookieFrom(w, middleware.TokenCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	stored, err := app.store.Users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.Len(t, stored.VerificationToken, 6)
	assert.Contains(t, app.mailer.last(t).TextBody, stored.VerificationToken)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/signup", map[string]string{
		"fullname": "Asha Rao", "email": "asha@example.com", "password": "secret123", "contact": "1",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/verify-email", map[string]string{"verificationCode": "000000"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/verify-email", map[string]string{"verificationCode": stored.VerificationToken}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["user"].(map[string]any)["isVerified"])
	assert.Equal(t, "Welcome!", app.mailer.last(t).Subject)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/login", map[string]string{"email": "asha@example.com", "password": "wrong"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/login", map[string]string{"email": "asha@example.com", "password": "secret123"}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := cookieFrom(w, middleware.TokenCookie)
	require.NotNil(t, login)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/user/check-auth", nil, login))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "asha@example.com", decode(t, w)["user"].(map[string]any)["email"])

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/user/check-auth", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/logout", nil, login))
	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookieFrom(w, middleware.TokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/signup", map[string]string{"email": "not-an-email"}, nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "fullname is required")
}

func TestForgotAndResetPassword(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "buyer@example.com", "oldpassword")

	w := app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/forgot-password", map[string]string{"email": "nobody@example.com"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/forgot-password", map[string]string{"email": "buyer@example.com"}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := app.mailer.last(t).TextBody
	idx := strings.Index(body, "/resetpassword/")
	require.GreaterOrEqual(t, idx, 0, body)
	token := strings.Fields(body[idx+len("/resetpassword/"):])[0]
	require.Len(t, token, 80)

	stored, err := app.store.Users.FindByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, token, stored.ResetPasswordTokenHash, "reset token must be stored hashed")

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/reset-password/"+token, map[string]string{"newPassword": "newpassword"}, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/reset-password/"+token, map[string]string{"newPassword": "again123"}, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/user/login", map[string]string{"email": "buyer@example.com", "password": "newpassword"}, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProfileUploadsDataURI(t *testing.T) {
	app := newTestApp(t)
	user := app.seedUser(t, "buyer@example.com", "password")

	picture := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	w := app.do(jsonRequest(t, http.MethodPut, "/api/v1/user/profile/update", map[string]string{
		"fullname": "Buyer", "email": "buyer@example.com", "city": "Pune", "profilePicture": picture,
	}, sessionCookie(t, user.ID)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	profile := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Pune", profile["city"])
	assert.True(t, strings.HasPrefix(profile["profilePicture"].(string), "/public/uploads/"))
}

func TestRestaurantAndMenuManagement(t *testing.T) {
	app := newTestApp(t)
	owner := app.seedUser(t, "owner@example.com", "password")
	cookie := sessionCookie(t, owner.ID)

	fields := map[string]string{
		"restaurantName": "Spice Route",
		"city":           "Pune",
		"country":        "India",
		"deliveryTime":   "25",
		"cuisines":       `["Indian","Chinese"]`,
	}

	w := app.do(multipartRequest(t, http.MethodPost, "/api/v1/restaurant/create", fields, "", "", cookie))
	assert.Equal(t, http.StatusBadRequest, w.Code, "image is required")

	w = app.do(multipartRequest(t, http.MethodPost, "/api/v1/restaurant/create", fields, "imageFile", "front.png", cookie))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(multipartRequest(t, http.MethodPost, "/api/v1/restaurant/create", fields, "imageFile", "front.png", cookie))
	assert.Equal(t, http.StatusBadRequest, w.Code, "one restaurant per user")

	w = app.do(multipartRequest(t, http.MethodPost, "/api/v1/menu/", map[string]string{
		"name": "Biryani", "description": "Hyderabadi", "price": "25000",
	}, "image", "biryani.jpg", cookie))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	menuID := decode(t, w)["menu"].(map[string]any)["_id"].(string)

	w = app.do(multipartRequest(t, http.MethodPost, "/api/v1/menu/", map[string]string{"name": "Free", "price": "-1"}, "image", "x.jpg", cookie))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(multipartRequest(t, http.MethodPut, "/api/v1/menu/"+menuID, map[string]string{"price": "26000"}, "", "", cookie))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	edited := decode(t, w)["menu"].(map[string]any)
	assert.Equal(t, float64(26000), edited["price"])
	assert.Equal(t, "Biryani", edited["name"])

	stranger := app.seedUser(t, "stranger@example.com", "password")
	w = app.do(multipartRequest(t, http.MethodPut, "/api/v1/menu/"+menuID, map[string]string{"price": "1"}, "", "", sessionCookie(t, stranger.ID)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/", nil, cookie))
	require.Equal(t, http.StatusOK, w.Code)
	own := decode(t, w)["restaurant"].(map[string]any)
	assert.Equal(t, "Spice Route", own["restaurantName"])
	assert.Equal(t, []any{"Indian", "Chinese"}, own["cuisines"])
	assert.Len(t, own["menus"], 1)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/"+own["_id"].(string), nil, cookie))
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/"+primitive.NewObjectID().Hex(), nil, cookie))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/search/pune?selectedCuisines=Chinese", nil, cookie))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/search/pune?selectedCuisines=Thai", nil, cookie))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 0)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/search/pune?page=0", nil, cookie))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(multipartRequest(t, http.MethodPut, "/api/v1/restaurant/update", map[string]string{
		"restaurantName": "Spice Route Express", "city": "Mumbai", "country": "India", "deliveryTime": "20", "cuisines": "Indian",
	}, "", "", cookie))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)["restaurant"].(map[string]any)
	assert.Equal(t, "Mumbai", updated["city"])
	assert.Equal(t, own["imageUrl"], updated["imageUrl"], "image kept when none uploaded")
}

func TestRestaurantBrowsingIsPublic(t *testing.T) {
	app := newTestApp(t)
	owner := app.seedUser(t, "owner@example.com", "password")
	restaurant, _, _ := app.seedRestaurant(t, owner.ID)

	w := app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/search/pune", nil, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode(t, w)["data"], 1)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/"+restaurant.ID.Hex(), nil, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	found := decode(t, w)["restaurant"].(map[string]any)
	assert.Equal(t, "Napoli", found["restaurantName"])
	assert.Len(t, found["menus"], 2)

	// Management routes still need a session.
	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/orders", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(jsonRequest(t, http.MethodPut, "/api/v1/restaurant/orders/"+primitive.NewObjectID().Hex(), map[string]string{"status": "Confirmed"}, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.do(multipartRequest(t, http.MethodPut, "/api/v1/restaurant/update", map[string]string{"restaurantName": "x"}, "", "", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutWebhookAndFulfillmentFlow(t *testing.T) {
	app := newTestApp(t)
	owner := app.seedUser(t, "owner@example.com", "password")
	buyer := app.seedUser(t, "buyer@example.com", "password")
	restaurant, pizza, soda := app.seedRestaurant(t, owner.ID)
	buyerCookie := sessionCookie(t, buyer.ID)
	ownerCookie := sessionCookie(t, owner.ID)

	w := app.do(jsonRequest(t, http.MethodPost, "/api/v1/order/checkout/create-checkout-session", map[string]any{
		"restaurantId":    restaurant.ID.Hex(),
		"deliveryDetails": map[string]string{"name": "Buyer", "email": "buyer@example.com", "address": "12 MG Road", "city": "Pune"},
		"cartItems": []map[string]any{
			{"menuId": pizza.ID.Hex(), "name": "Margherita", "price": 500, "quantity": 2},
			{"menuId": soda.ID.Hex(), "name": "Lime soda", "price": 300, "quantity": 1},
		},
	}, buyerCookie))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	checkout := decode(t, w)
	assert.Equal(t, true, checkout["success"])
	assert.Equal(t, float64(1300), checkout["totalAmount"])
	session := checkout["session"].(map[string]any)
	assert.NotEmpty(t, session["url"])

	reqs := app.provider.Requests()
	require.Len(t, reqs, 1)
	payload := paymenttest.CompletedEvent("evt_1", session["id"].(string), "paid", 1300, reqs[0])

	webhook := func(signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/order/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", signature)
		return app.do(req)
	}

	w = webhook(paymenttest.Sign(payload, "whsec_wrong", time.Now()))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, app.store.Orders.(*inmemory.OrderRepository).Count())

	w = webhook(paymenttest.Sign(payload, testWebhookSecret, time.Now()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	w = webhook(paymenttest.Sign(payload, testWebhookSecret, time.Now()))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, app.store.Orders.(*inmemory.OrderRepository).Count())

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/order/", nil, buyerCookie))
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["orders"].([]any)
	require.Len(t, list, 1)
	order := list[0].(map[string]any)
	assert.Equal(t, "Pending", order["status"])
	assert.Equal(t, float64(1300), order["totalAmount"])
	orderID := order["_id"].(string)

	statusURL := "/api/v1/restaurant/orders/" + orderID

	w = app.do(jsonRequest(t, http.MethodPut, statusURL, map[string]string{"status": "Bogus"}, ownerCookie))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	w = app.do(jsonRequest(t, http.MethodPut, statusURL, map[string]string{"status": "Confirmed"}, buyerCookie))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(jsonRequest(t, http.MethodPut, statusURL, map[string]string{"status": "Confirmed"}, ownerCookie))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Confirmed", decode(t, w)["status"])

	w = app.do(jsonRequest(t, http.MethodPut, statusURL, map[string]string{"status": "Pending"}, ownerCookie))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(jsonRequest(t, http.MethodGet, "/api/v1/restaurant/orders", nil, ownerCookie))
	require.Equal(t, http.StatusOK, w.Code)
	incoming := decode(t, w)["orders"].([]any)
	require.Len(t, incoming, 1)
	assert.Equal(t, "Confirmed", incoming[0].(map[string]any)["status"])

	w = app.do(jsonRequest(t, http.MethodPut, "/api/v1/restaurant/orders/"+primitive.NewObjectID().Hex(), map[string]string{"status": "Confirmed"}, ownerCookie))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutRejectsEmptyCartAndAnonymous(t *testing.T) {
	app := newTestApp(t)
	owner := app.seedUser(t, "owner@example.com", "password")
	restaurant, _, _ := app.seedRestaurant(t, owner.ID)

	body := map[string]any{
		"restaurantId":    restaurant.ID.Hex(),
		"deliveryDetails": map[string]string{"name": "Buyer", "address": "12 MG Road", "city": "Pune"},
		"cartItems":       []any{},
	}

	w := app.do(jsonRequest(t, http.MethodPost, "/api/v1/order/checkout/create-checkout-session", body, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/order/checkout/create-checkout-session", body, sessionCookie(t, primitive.NewObjectID())))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])

	body["restaurantId"] = primitive.NewObjectID().Hex()
	body["cartItems"] = []map[string]any{{"menuId": primitive.NewObjectID().Hex(), "quantity": 1}}
	w = app.do(jsonRequest(t, http.MethodPost, "/api/v1/order/checkout/create-checkout-session", body, sessionCookie(t, primitive.NewObjectID())))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, app.provider.Requests())
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	app.store.Ping = func(context.Context) error { return assert.AnError }
	router := gin.New()
	router.GET("/health", Health(app.store.Ping))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestParsePaginationParams(t *testing.T) {
	skip, limit, err := parsePaginationParams("", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(20), limit)

	skip, limit, err = parsePaginationParams("3", "500")
	require.NoError(t, err)
	assert.Equal(t, int64(maxPageSize), limit)
	assert.Equal(t, int64(2*maxPageSize), skip)

	_, _, err = parsePaginationParams("x", "")
	assert.ErrorIs(t, err, errInvalidPagination)
}
