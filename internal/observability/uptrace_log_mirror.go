package observability

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
)

const uptraceLogInstrumentation = "lzvcup-scraper/internal/platform/logging"

// quietEvents are per-request entries that stay local below warn level;
// their outcome is already logged once per page.
var quietEvents = map[string]bool{
	"lzvcup request attempt failed": true,
	"sportshall not geocoded":       true,
}

var severities = map[logging.Level]otellog.Severity{
	logging.LevelDebug: otellog.SeverityDebug,
	logging.LevelInfo:  otellog.SeverityInfo,
	logging.LevelWarn:  otellog.SeverityWarn,
	logging.LevelError: otellog.SeverityError,
}

func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	emitter := otelglobal.Logger(uptraceLogInstrumentation, otellog.WithInstrumentationVersion(serviceVersion))

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if quietEvents[msg] && level < logging.LevelWarn {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}
		severity := severityOf(level)
		if !emitter.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}
		emitter.Emit(ctx, newLogRecord(time.Now(), severity, level, msg, args))
	}
}

func severityOf(level logging.Level) otellog.Severity {
	if s, ok := severities[level]; ok {
		return s
	}
	if level > logging.LevelError {
		return otellog.SeverityFatal
	}
	return otellog.SeverityDebug
}

func newLogRecord(at time.Time, severity otellog.Severity, level logging.Level, msg string, args []any) otellog.Record {
	var rec otellog.Record
	rec.SetTimestamp(at.UTC())
	rec.SetObservedTimestamp(at.UTC())
	rec.SetSeverity(severity)
	rec.SetSeverityText(strings.ToUpper(level.String()))
	rec.SetEventName(msg)
	rec.SetBody(otellog.StringValue(msg))
	rec.AddAttributes(logAttributes(args)...)
	return rec
}

// logAttributes pairs up key/value args the same way the zap fields are
// built. A trailing key without value becomes an empty attribute.
func logAttributes(args []any) []otellog.KeyValue {
	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if strings.TrimSpace(key) == "" {
			key = "arg" + strconv.Itoa(i/2)
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: logValue(args[i+1])})
	}
	return attrs
}

// logValue covers the value types logged by the pipeline. Anything else is
// rendered with fmt.
func logValue(v any) otellog.Value {
	switch v := v.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int32:
		return otellog.Int64Value(int64(v))
	case int64:
		return otellog.Int64Value(v)
	case uint64:
		return otellog.StringValue(strconv.FormatUint(v, 10))
	case float64:
		return otellog.Float64Value(v)
	case time.Duration:
		return otellog.StringValue(v.String())
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case error:
		return otellog.StringValue(v.Error())
	case []string:
		items := make([]otellog.Value, len(v))
		for i, s := range v {
			items[i] = otellog.StringValue(s)
		}
		return otellog.SliceValue(items...)
	case map[string]int:
		kvs := make([]otellog.KeyValue, 0, len(v))
		for k, n := range v {
			kvs = append(kvs, otellog.Int(k, n))
		}
		return otellog.MapValue(kvs...)
	default:
		return otellog.StringValue(fmt.Sprint(v))
	}
}
