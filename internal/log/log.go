package log

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.Logger = zap.NewNop()

// Init configures the process logger. An empty file path logs to stdout only.
func Init(level, file string) error {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}
	if file != "" {
		if f, ferr := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); ferr == nil {
			f.Close()
			cfg.OutputPaths = append(cfg.OutputPaths, file)
		}
	}
	l, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return err
	}
	base = l
	return nil
}

func Sync() { _ = base.Sync() }

func write(level zapcore.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	zf := make([]zap.Field, 0, len(fields)+6)
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
	}
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	if ce := base.Check(level, action); ce != nil {
		ce.Write(zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, c, action, err, fields)
}
