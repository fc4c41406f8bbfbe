package learnhub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/jimiolaniyan/learnhub/auth"
	"github.com/jimiolaniyan/learnhub/logger"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewRouter mounts the account endpoints.
func NewRouter(svc Service, signer *auth.Signer, log *zap.Logger) http.Handler {
	router := httprouter.New()
	router.Handler(http.MethodPost, "/v1/users", RegisterAccountHandler(svc))
	router.Handler(http.MethodPost, "/v1/auth/login", LoginHandler(svc))
	router.Handler(http.MethodGet, "/v1/users/:username", auth.RequireAuth(signer, GetAccountHandler(svc)))
	router.Handler(http.MethodGet, "/v1/users/:username/courses", GetAccountCoursesHandler(svc))

	return logger.RequestLogger(log, router)
}

func RegisterAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		input, err := decodeRegisterAccountRequest(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		res, err := svc.RegisterAccount(r.Context(), input)
		if err != nil {
			encodeError(err, w)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, url.PathEscape(res.Username)))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(res)
	})
}

func LoginHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		req := loginRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		token, err := svc.ValidateCredentials(r.Context(), req.Username, req.Password)
		if err != nil {
			encodeError(err, w)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"authToken": token})
	})
}

func GetAccountHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		username := httprouter.ParamsFromContext(r.Context()).ByName("username")

		acc, err := svc.GetAccount(r.Context(), username)
		if err != nil {
			encodeError(err, w)
			return
		}

		_ = json.NewEncoder(w).Encode(acc)
	})
}

func GetAccountCoursesHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		username := httprouter.ParamsFromContext(r.Context()).ByName("username")

		courses, err := svc.GetAccountCourses(r.Context(), username)
		if err != nil {
			encodeError(err, w)
			return
		}

		_ = json.NewEncoder(w).Encode(courses)
	})
}

func encodeError(err error, w http.ResponseWriter) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		w.WriteHeader(verr.Code)
		_ = json.NewEncoder(w).Encode(verr)
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": http.StatusNotFound, "message": "Not found"})
	case errors.Is(err, ErrInvalidCredentials):
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": http.StatusUnauthorized, "message": "Unauthorized"})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": http.StatusInternalServerError, "message": "Internal server error"})
	}
}

var errNotAnObject = errors.New("request body must be a JSON object")

// decodeRegisterAccountRequest keeps the body as a raw map so that the field
// types can be checked by Validate.
func decodeRegisterAccountRequest(r *http.Request) (map[string]interface{}, error) {
	var input map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, errNotAnObject
	}
	return input, nil
}
