package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/infrastructure/config"
)

// NewLogger builds a configured logrus logger from application config.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// Logger logs every unary call once it completes.
func Logger(log logrus.FieldLogger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			code := connect.CodeOf(err)
			entry := log.WithFields(requestFields(req, time.Since(start), err))
			if err != nil {
				entry = entry.WithError(err)
			}
			switch determineLogLevel(code, err) {
			case logrus.InfoLevel:
				entry.Info("request completed")
			case logrus.WarnLevel:
				entry.Warn("request completed")
			default:
				entry.Error("request completed")
			}
			return resp, err
		}
	}
}

func determineLogLevel(code connect.Code, err error) logrus.Level {
	if err == nil {
		return logrus.InfoLevel
	}
	switch code {
	case connect.CodeInvalidArgument, connect.CodeFailedPrecondition, connect.CodeNotFound,
		connect.CodeAlreadyExists, connect.CodeResourceExhausted, connect.CodeCanceled:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

func requestFields(req connect.AnyRequest, duration time.Duration, err error) logrus.Fields {
	status := "ok"
	if err != nil {
		status = connect.CodeOf(err).String()
	}
	fields := logrus.Fields{
		"procedure": req.Spec().Procedure,
		"status":    status,
		"duration":  duration.String(),
	}
	appendField(fields, "http_method", req.HTTPMethod())
	appendField(fields, "protocol", req.Peer().Protocol)
	appendField(fields, "peer_addr", req.Peer().Addr)

	header := req.Header()
	appendField(fields, "user_agent", header.Get("User-Agent"))
	appendField(fields, "request_id", header.Get("X-Request-Id"))
	appendField(fields, "client_ip", firstForwardedFor(header))
	if cl := contentLength(header); cl >= 0 {
		fields["request_bytes"] = cl
	}
	return fields
}

// AccessLog logs plain HTTP requests that bypass Connect, such as audio
// downloads.
func AccessLog(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}
		appendField(fields, "client_ip", firstForwardedFor(r.Header))
		if rec.status >= http.StatusInternalServerError {
			log.WithFields(fields).Error("http request")
			return
		}
		log.WithFields(fields).Debug("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func appendField(fields logrus.Fields, key, value string) {
	if value == "" {
		return
	}
	fields[key] = value
}

func firstForwardedFor(header http.Header) string {
	forwarded := header.Get("X-Forwarded-For")
	if forwarded == "" {
		return ""
	}
	for _, part := range strings.Split(forwarded, ",") {
		if candidate := strings.TrimSpace(part); candidate != "" {
			return candidate
		}
	}
	return ""
}

func contentLength(header http.Header) int {
	if header == nil {
		return -1
	}
	if cl := header.Get("Content-Length"); cl != "" {
		if parsed, err := strconv.Atoi(cl); err == nil {
			return parsed
		}
	}
	return -1
}
