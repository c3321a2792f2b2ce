package stores

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/launchdarkly/laws-harness/framework"
	o "github.com/launchdarkly/laws-harness/framework/opt"
)

const (
	keysPathPrefix = "/keys/"
	keyPathVar     = "key"
)

// ServiceStatus is the body of the status response at the service's root path.
type ServiceStatus struct {
	Name string `json:"name"`
	DSN  string `json:"dsn"`
}

// ValueBody is the body of a GET response and of a PUT request. For GET, a missing key is
// represented by a null value.
type ValueBody struct {
	Value o.Maybe[string] `json:"value"`
}

// StoreService exposes a Store over HTTP:
//
//	GET    /            -> ServiceStatus
//	GET    /keys/{key}  -> ValueBody
//	PUT    /keys/{key}  <- ValueBody, responds 204
//	DELETE /keys/{key}  -> 204
//
// Keys are path-escaped, so they may contain slashes. A store error produces a 500 response
// with the error text as a plain-text body.
type StoreService struct {
	store  Store
	router *mux.Router
	logger framework.Logger
}

func NewStoreService(store Store, logger framework.Logger) *StoreService {
	if logger == nil {
		logger = framework.NullLogger()
	}
	router := mux.NewRouter().UseEncodedPath().SkipClean(true)
	s := &StoreService{store: store, router: router, logger: logger}
	router.HandleFunc("/", s.getStatus).Methods("GET")
	keyPath := keysPathPrefix + "{" + keyPathVar + ":.+}"
	router.HandleFunc(keyPath, s.withKey(s.get)).Methods("GET")
	router.HandleFunc(keyPath, s.withKey(s.put)).Methods("PUT")
	router.HandleFunc(keyPath, s.withKey(s.delete)).Methods("DELETE")
	return s
}

func (s *StoreService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *StoreService) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ServiceStatus{Name: s.store.Name(), DSN: s.store.DSN()})
}

func (s *StoreService) withKey(handler func(http.ResponseWriter, *http.Request, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := url.PathUnescape(mux.Vars(r)[keyPathVar])
		if err != nil {
			s.logger.Printf("[%s] bad key in %s %s", s.store.Name(), r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.logger.Printf("[%s] got %s %q", s.store.Name(), r.Method, key)
		if err := handler(w, r, key); err != nil {
			w.Header().Set("content-type", "text/plain")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(err.Error()))
			s.logger.Printf("[%s] responded with 500 - %s", s.store.Name(), err.Error())
		}
	}
}

func (s *StoreService) get(w http.ResponseWriter, r *http.Request, key string) error {
	value, err := s.store.Get(r.Context(), key)
	if err != nil {
		return err
	}
	writeJSON(w, ValueBody{Value: value})
	return nil
}

func (s *StoreService) put(w http.ResponseWriter, r *http.Request, key string) error {
	var body ValueBody
	data, err := io.ReadAll(r.Body)
	if err == nil {
		err = json.Unmarshal(data, &body)
	}
	if err != nil || !body.Value.IsDefined() {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}
	if err := s.store.Put(r.Context(), key, body.Value.Value()); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *StoreService) delete(w http.ResponseWriter, r *http.Request, key string) error {
	if err := s.store.Delete(r.Context(), key); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	data, _ := json.Marshal(value)
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
