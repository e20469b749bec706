package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/georgechang0117/shawty/core/history"
	"github.com/georgechang0117/shawty/core/submission"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type restImpl struct {
	e         *echo.Echo
	port      int
	submitter submission.Submitter
	history   history.HistoryCache
}

// URL is not required here; empty input is rejected by the submitter so it shows in status.
type submitURLParams struct {
	URL string `json:"url"`
}

type submitURLResp struct {
	OriginalURL string `json:"originalUrl"`
	ShortURL    string `json:"shortUrl"`
}

type statusResp struct {
	State    string `json:"state"`
	Input    string `json:"input,omitempty"`
	ShortURL string `json:"shortUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewRest creates an instance of Rest.
func NewRest(
	port int,
	submitter submission.Submitter,
	history history.HistoryCache,
	gatherer prometheus.Gatherer,
) Rest {
	r := &restImpl{
		e:         newEcho(),
		port:      port,
		submitter: submitter,
		history:   history,
	}

	r.e.Use(requestLogger)
	apiGroup := r.e.Group("/api")
	apiV1Group := apiGroup.Group("/v1")
	apiV1Group.POST("/urls", r.submitURL)
	apiV1Group.POST("/urls/retry", r.retryURL)
	apiV1Group.GET("/history", r.listHistory)
	apiV1Group.GET("/status", r.status)

	r.e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

func (r *restImpl) Start() error {
	err := r.e.Start(fmt.Sprintf(":%d", r.port))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r *restImpl) Shutdown(ctx context.Context) error {
	return r.e.Shutdown(ctx)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &defaultValidator{v: validator.New()}
	return e
}

type defaultValidator struct {
	v *validator.Validate
}

func (s *defaultValidator) Validate(i interface{}) error {
	return s.v.Struct(i)
}

func bindParams(c echo.Context, params interface{}) error {
	if err := c.Bind(params); err != nil {
		return err
	}

	err := c.Validate(params)
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

// submissionError maps a submission failure to an HTTP error.
func submissionError(err error) error {
	var (
		verr *submission.ValidationError
		serr *submission.ServiceError
		cerr *submission.ConcurrentSubmissionError
	)
	switch {
	case errors.As(err, &verr):
		return echo.NewHTTPError(http.StatusBadRequest, verr.Reason)
	case errors.As(err, &cerr):
		return echo.NewHTTPError(http.StatusConflict, cerr.Error())
	case errors.As(err, &serr):
		return echo.NewHTTPError(http.StatusBadGateway, submission.ReasonServiceFailure)
	default:
		return err
	}
}

func (r *restImpl) submitURL(c echo.Context) error {
	var params submitURLParams
	if err := bindParams(c, &params); err != nil {
		return err
	}

	result, err := r.submitter.Submit(c.Request().Context(), params.URL)
	if err != nil {
		return submissionError(err)
	}

	return c.JSON(http.StatusCreated, submitURLResp(*result))
}

func (r *restImpl) retryURL(c echo.Context) error {
	result, err := r.submitter.Retry(c.Request().Context())
	if err != nil {
		return submissionError(err)
	}

	return c.JSON(http.StatusCreated, submitURLResp(*result))
}

func (r *restImpl) listHistory(c echo.Context) error {
	return c.JSON(http.StatusOK, r.history.Entries())
}

func (r *restImpl) status(c echo.Context) error {
	status := r.submitter.Status()
	resp := statusResp{
		State: status.State.String(),
		Input: status.Input,
	}
	if status.Result != nil {
		resp.ShortURL = status.Result.ShortURL
	}
	if status.Err != nil {
		resp.Error = status.Err.Error()
	}

	return c.JSON(http.StatusOK, resp)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		req := c.Request()
		res := c.Response()
		start := time.Now()
		if err = next(c); err != nil {
			c.Error(err)
		}
		stop := time.Now()

		if err != nil {
			zap.S().Errorf("error: %v", err.Error())
		}

		zap.S().Infof(
			"uri=%s method=%s status=%d latency=%d",
			req.RequestURI,
			req.Method,
			res.Status,
			stop.Sub(start).Microseconds(),
		)

		return err
	}
}
