package log

import (
	"time"

	"go.uber.org/zap"
)

type Field struct {
	Key   string
	Type  FieldType
	Value any
}

type FieldType uint8

const (
	UnknownType FieldType = iota
	BoolType
	DurationType
	Float64Type
	IntType
	Uint64Type
	StringType
	ErrorType
)

func Any(key string, val any) Field                { return Field{Key: key, Type: UnknownType, Value: val} }
func Bool(key string, val bool) Field              { return Field{Key: key, Type: BoolType, Value: val} }
func Duration(key string, val time.Duration) Field { return Field{Key: key, Type: DurationType, Value: val} }
func Float64(key string, val float64) Field        { return Field{Key: key, Type: Float64Type, Value: val} }
func Int(key string, val int) Field                { return Field{Key: key, Type: IntType, Value: val} }
func Uint64(key string, val uint64) Field          { return Field{Key: key, Type: Uint64Type, Value: val} }
func String(key string, val string) Field          { return Field{Key: key, Type: StringType, Value: val} }

func Error(val error) Field {
	return Field{Key: "error", Type: ErrorType, Value: val}
}

func toZapFields(fields []Field) []zap.Field {
	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch f.Type {
		case BoolType:
			zapFields[i] = zap.Bool(f.Key, f.Value.(bool))
		case DurationType:
			zapFields[i] = zap.Duration(f.Key, f.Value.(time.Duration))
		case Float64Type:
			zapFields[i] = zap.Float64(f.Key, f.Value.(float64))
		case IntType:
			zapFields[i] = zap.Int(f.Key, f.Value.(int))
		case Uint64Type:
			zapFields[i] = zap.Uint64(f.Key, f.Value.(uint64))
		case StringType:
			zapFields[i] = zap.String(f.Key, f.Value.(string))
		case ErrorType:
			err, _ := f.Value.(error)
			zapFields[i] = zap.NamedError(f.Key, err)
		default:
			zapFields[i] = zap.Any(f.Key, f.Value)
		}
	}
	return zapFields
}
