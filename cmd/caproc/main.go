// Command caproc checks a detection pipeline's expected alert output
// against a downstream review capacity.
//
// One-shot evaluation:
//
//	caproc -R 20 -p 0.01 -tpr 0.85 -fpr 0.30 -C 4
//	caproc -R 20 -p 0.01 -tpr 0.85 -fpr 0.07 -C 4 -delta 0.01
//	caproc -R 20 -p 0.01 -tpr 0.85 -fpr 0.07 -C 4 -delta 0.01 -json
//
// Or serve evaluations over HTTP:
//
//	caproc -serve :8080
//	curl -s localhost:8080/evaluate -d '{"R":20,"p":0.01,"tpr":0.85,"fpr":0.07,"C":4,"delta":0.01}'
//
// CAPROC_CAPACITY and CAPROC_DELTA (from the environment or a .env file)
// provide defaults for -C and -delta.
//
// Exit status: 0 for any completed evaluation (a FAIL verdict is a
// result, not an error), 2 for rejected input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/alexshd/caproc"
)

func init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))
}

func main() {
	// A .env file may carry defaults; absence is not an error.
	_ = godotenv.Load()

	var (
		r      = flag.Float64("R", math.NaN(), "incoming items per time unit (required)")
		p      = flag.Float64("p", math.NaN(), "base anomaly rate (probability, required)")
		tpr    = flag.Float64("tpr", math.NaN(), "detector true positive rate (required)")
		fpr    = flag.Float64("fpr", math.NaN(), "detector false positive rate (required)")
		c      = flag.Float64("C", envFloat("CAPROC_CAPACITY", math.NaN()), "review capacity (alerts per time unit, required unless CAPROC_CAPACITY is set)")
		delta  = flag.Float64("delta", envFloat("CAPROC_DELTA", math.NaN()), "overload risk target in (0,1); enables the Poisson δ-gate")
		asJSON = flag.Bool("json", false, "emit the structured result as JSON instead of the text report")
		serve  = flag.String("serve", "", "serve evaluations over HTTP on this address instead of running once")
	)
	flag.Parse()

	if *serve != "" {
		runServer(*serve)
		return
	}

	// Unset flags keep their NaN sentinel; an omitted -p must not quietly
	// evaluate as p = 0.
	if missing := missingFlags([]flagValue{
		{"R", *r}, {"p", *p}, {"tpr", *tpr}, {"fpr", *fpr}, {"C", *c},
	}); len(missing) > 0 {
		slog.Error("missing required flags", "flags", strings.Join(missing, ", "))
		flag.Usage()
		os.Exit(2)
	}

	in := caproc.RateInputs{R: *r, P: *p, TPR: *tpr, FPR: *fpr, C: *c}

	// NaN marks "no δ supplied": the gate only runs when asked for.
	var dp *float64
	if !math.IsNaN(*delta) {
		dp = delta
	}

	ev, err := caproc.Evaluate(in, dp)
	if err != nil {
		var inv *caproc.InvalidInputError
		if errors.As(err, &inv) {
			slog.Error("rejected input", "field", inv.Field, "reason", inv.Reason)
			os.Exit(2)
		}
		slog.Error("evaluation failed", "err", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := sonic.MarshalIndent(ev, "", "  ")
		if err != nil {
			slog.Error("encode result", "err", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Print(caproc.Report(ev))
}

// evaluateRequest is the HTTP body: the operating point plus an optional
// risk tolerance (absent delta skips the Poisson gate).
type evaluateRequest struct {
	caproc.RateInputs
	Delta *float64 `json:"delta,omitempty"`
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/evaluate", func(c *gin.Context) {
		var req evaluateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ev, err := caproc.Evaluate(req.RateInputs, req.Delta)
		if err != nil {
			var inv *caproc.InvalidInputError
			if errors.As(err, &inv) {
				c.JSON(http.StatusBadRequest, gin.H{"error": inv.Error(), "field": inv.Field})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ev)
	})

	return router
}

func runServer(addr string) {
	slog.Info("caproc evaluation server starting", "addr", addr)
	if err := newRouter().Run(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// flagValue pairs a required flag with its parsed value for the
// missing-flag check.
type flagValue struct {
	Name  string
	Value float64
}

// missingFlags returns the names of required flags still holding the NaN
// "unset" sentinel, in declaration order.
func missingFlags(flags []flagValue) []string {
	var missing []string
	for _, f := range flags {
		if math.IsNaN(f.Value) {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// envFloat reads a float default from the environment, falling back when
// the variable is unset or unparsable.
func envFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Warn("ignoring unparsable env value", "key", key, "value", s)
		return fallback
	}
	return v
}
