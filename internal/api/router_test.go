package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidly/rental-api/internal/api/handler"
	"github.com/vidly/rental-api/internal/core/domain"
	"github.com/vidly/rental-api/internal/core/service"
	"github.com/vidly/rental-api/internal/testutil"
)

type fixture struct {
	e         *echo.Echo
	tokens    *service.TokenService
	genres    *testutil.MemStore[domain.Genre]
	movies    *testutil.MovieStore
	customers *testutil.MemStore[domain.Customer]
	rentals   *testutil.MemStore[domain.Rental]
	users     *testutil.UserStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.Nop()

	f := &fixture{
		tokens:    service.NewTokenService("test-secret", time.Hour),
		genres:    testutil.NewGenreStore(),
		movies:    testutil.NewMovieStore(),
		customers: testutil.NewCustomerStore(),
		rentals:   testutil.NewRentalStore(),
		users:     testutil.NewUserStore(),
	}
	auth := service.NewAuthService(service.AuthDependencies{
		Users:    f.users,
		Hasher:   service.NewBcryptHasher(bcrypt.MinCost),
		Tokens:   f.tokens,
		Throttle: testutil.NewThrottle(5),
		Logger:   log,
	})
	reg := prometheus.NewRegistry()

	f.e = NewRouter(Dependencies{
		Logger:     log,
		Tokens:     f.tokens,
		Auth:       auth,
		Genres:     service.NewGenreService(f.genres, log),
		Movies:     service.NewMovieService(f.movies, f.genres, log),
		Customers:  service.NewCustomerService(f.customers, log),
		Rentals:    service.NewRentalService(f.rentals, f.customers, f.movies, log),
		Checks:     map[string]handler.Check{},
		Registerer: reg,
		Gatherer:   reg,
	})
	return f
}

func (f *fixture) token(t *testing.T, admin bool) string {
	t.Helper()
	tok, err := f.tokens.Issue(domain.Principal{SubjectID: primitive.NewObjectID().Hex(), IsAdmin: admin})
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func TestGenres_CreateAuthorization(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/genres", `{"name":"genre1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", errorOf(t, rec))

	rec = f.do(http.MethodPost, "/api/genres", `{"name":"genre1"}`, "a")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid token.", errorOf(t, rec))

	rec = f.do(http.MethodPost, "/api/genres", `{"name":"1234"}`, f.token(t, false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name must be at least 5 characters long", errorOf(t, rec))
	assert.Zero(t, f.genres.Len())

	rec = f.do(http.MethodPost, "/api/genres", `{"name":"genre1"}`, f.token(t, false))
	require.Equal(t, http.StatusOK, rec.Code)

	var created domain.Genre
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "genre1", created.Name)
	assert.Equal(t, 1, f.genres.Len())
}

func TestGenres_ListAndGetArePublic(t *testing.T) {
	f := newFixture(t)
	drama := domain.Genre{ID: primitive.NewObjectID(), Name: "drama"}
	f.genres.Seed(domain.Genre{ID: primitive.NewObjectID(), Name: "action"}, drama)

	rec := f.do(http.MethodGet, "/api/genres", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []domain.Genre
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "action", all[0].Name)

	rec = f.do(http.MethodGet, "/api/genres/"+drama.ID.Hex(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"_id":"`+drama.ID.Hex()+`"`)
}

func TestGenres_MalformedIDNeverReachesStore(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct{ method, token string }{
		{http.MethodGet, ""},
		{http.MethodPut, f.token(t, false)},
		{http.MethodDelete, f.token(t, true)},
	} {
		rec := f.do(tc.method, "/api/genres/1", `{"name":"genre1"}`, tc.token)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method)
		assert.Equal(t, "Invalid ID.", errorOf(t, rec), tc.method)
	}
	assert.Zero(t, f.genres.Calls)
}

func TestGenres_PolicyRunsInChainOrder(t *testing.T) {
	f := newFixture(t)

	// Replace authenticates before checking the id; Delete checks the id first.
	rec := f.do(http.MethodPut, "/api/genres/1", `{"name":"genre1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodDelete, "/api/genres/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Invalid ID.", errorOf(t, rec))

	rec = f.do(http.MethodDelete, "/api/genres/"+primitive.NewObjectID().Hex(), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, f.genres.Calls)
}

func TestGenres_Delete(t *testing.T) {
	f := newFixture(t)
	genre := domain.Genre{ID: primitive.NewObjectID(), Name: "genre1"}
	f.genres.Seed(genre)
	path := "/api/genres/" + genre.ID.Hex()

	rec := f.do(http.MethodDelete, path, "", f.token(t, false))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied.", errorOf(t, rec))

	rec = f.do(http.MethodDelete, "/api/genres/"+primitive.NewObjectID().Hex(), "", f.token(t, true))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "The genre with the given ID was not found.", errorOf(t, rec))

	rec = f.do(http.MethodDelete, path, "", f.token(t, true))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"genre1"`)

	rec = f.do(http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenres_Replace(t *testing.T) {
	f := newFixture(t)
	genre := domain.Genre{ID: primitive.NewObjectID(), Name: "genre1"}
	f.genres.Seed(genre)

	rec := f.do(http.MethodPut, "/api/genres/"+genre.ID.Hex(), `{"name":"updatedName"}`, f.token(t, false))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.genres.FindByID(t.Context(), genre.ID)
	require.NoError(t, err)
	assert.Equal(t, "updatedName", stored.Name)
}

func TestMovies_GenreResolution(t *testing.T) {
	f := newFixture(t)
	genre := domain.Genre{ID: primitive.NewObjectID(), Name: "comedy"}
	f.genres.Seed(genre)
	tok := f.token(t, false)

	rec := f.do(http.MethodPost, "/api/movies",
		`{"title":"Airplane","genreId":"`+primitive.NewObjectID().Hex()+`","numberInStock":3,"dailyRentalRate":2}`, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid genre.", errorOf(t, rec))
	assert.Zero(t, f.movies.Len())

	rec = f.do(http.MethodPost, "/api/movies",
		`{"title":"Airplane","genreId":"`+genre.ID.Hex()+`","numberInStock":0,"dailyRentalRate":2}`, tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var movie domain.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movie))
	assert.Equal(t, genre.ID, movie.Genre.ID)
	assert.Equal(t, "comedy", movie.Genre.Name)
	assert.Equal(t, 0, movie.NumberInStock)
}

func TestMovies_MissingFieldStoresNothing(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/movies", `{"title":"Airplane","genreId":"`+primitive.NewObjectID().Hex()+`"}`, f.token(t, false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "numberInStock is required", errorOf(t, rec))
	assert.Zero(t, f.movies.Calls)
	assert.Zero(t, f.genres.Calls)
}

func TestCustomers_DeleteNeedsOnlyAuthentication(t *testing.T) {
	f := newFixture(t)
	customer := domain.Customer{ID: primitive.NewObjectID(), Name: "Alice Smith", Phone: "12345"}
	f.customers.Seed(customer)

	rec := f.do(http.MethodDelete, "/api/customers/"+customer.ID.Hex(), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodDelete, "/api/customers/"+customer.ID.Hex(), "", f.token(t, false))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.customers.Len())
}

func TestRentals_CreateAdjustsStock(t *testing.T) {
	f := newFixture(t)
	customer := domain.Customer{ID: primitive.NewObjectID(), Name: "Alice Smith", Phone: "12345"}
	movie := domain.Movie{ID: primitive.NewObjectID(), Title: "Airplane", NumberInStock: 1, DailyRentalRate: 2}
	f.customers.Seed(customer)
	f.movies.Seed(movie)
	tok := f.token(t, false)
	body := `{"customerId":"` + customer.ID.Hex() + `","movieId":"` + movie.ID.Hex() + `"}`

	rec := f.do(http.MethodPost, "/api/rentals", body, tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var rental domain.Rental
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rental))
	assert.Equal(t, customer.ID, rental.Customer.ID)
	assert.Equal(t, "Airplane", rental.Movie.Title)
	assert.False(t, rental.DateOut.IsZero())
	assert.NotContains(t, rec.Body.String(), "dateReturned")

	stored, err := f.movies.FindByID(t.Context(), movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NumberInStock)

	rec = f.do(http.MethodPost, "/api/rentals", body, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Movie not in stock.", errorOf(t, rec))
	assert.Equal(t, 1, f.rentals.Len())
}

func TestUsers_RegisterAndMe(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/users", `{"name":"Alice Smith","email":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	token := rec.Header().Get("x-auth-token")
	require.NotEmpty(t, token)
	principal, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.False(t, principal.IsAdmin)

	rec = f.do(http.MethodGet, "/api/users/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = f.do(http.MethodPost, "/api/users", `{"name":"Alice Again","email":"alice@example.com","password":"secret2"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already registered.", errorOf(t, rec))
	assert.Equal(t, 1, f.users.Len())
}

func TestUsers_AdminRoutes(t *testing.T) {
	f := newFixture(t)
	user := domain.User{ID: primitive.NewObjectID(), Name: "Alice Smith", Email: "alice@example.com", Password: "hash"}
	f.users.Seed(user)

	rec := f.do(http.MethodGet, "/api/users", "", f.token(t, false))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodGet, "/api/users", "", f.token(t, true))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")
	assert.NotContains(t, rec.Body.String(), "hash")

	rec = f.do(http.MethodDelete, "/api/users/"+user.ID.Hex(), "", f.token(t, true))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, f.users.Len())
}

func TestAuth_Login(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/users", `{"name":"Alice Smith","email":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth", `{"email":"alice@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password.", errorOf(t, rec))

	rec = f.do(http.MethodPost, "/api/auth", `{"email":"nobody@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password.", errorOf(t, rec))

	rec = f.do(http.MethodPost, "/api/auth", `{"email":"alice@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var token string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	_, err := f.tokens.Verify(token)
	assert.NoError(t, err)
}

func TestOperationalRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.do(http.MethodGet, "/api/genres", "", "")
	rec = f.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vidly_requests_total")

	rec = f.do(http.MethodGet, "/api/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
