package mongostore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/localnerve/shopdb/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

var (
	tMoney = reflect.TypeOf(models.Money{})
	tDate  = reflect.TypeOf(datatypes.Date{})
)

// Registry returns the bson registry the client must be built with. Money is
// stored as Decimal128 and event dates as BSON dates.
func Registry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tMoney, bsoncodec.ValueEncoderFunc(encodeMoney))
	reg.RegisterTypeDecoder(tMoney, bsoncodec.ValueDecoderFunc(decodeMoney))
	reg.RegisterTypeEncoder(tDate, bsoncodec.ValueEncoderFunc(encodeDate))
	reg.RegisterTypeDecoder(tDate, bsoncodec.ValueDecoderFunc(decodeDate))
	return reg
}

func encodeMoney(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tMoney {
		return bsoncodec.ValueEncoderError{Name: "MoneyEncodeValue", Types: []reflect.Type{tMoney}, Received: val}
	}
	m := val.Interface().(models.Money)
	d, err := primitive.ParseDecimal128(m.String())
	if err != nil {
		return err
	}
	return vw.WriteDecimal128(d)
}

func decodeMoney(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tMoney {
		return bsoncodec.ValueDecoderError{Name: "MoneyDecodeValue", Types: []reflect.Type{tMoney}, Received: val}
	}

	var m models.Money
	switch vr.Type() {
	case bsontype.Decimal128:
		d, err := vr.ReadDecimal128()
		if err != nil {
			return err
		}
		if m, err = models.ParseMoney(d.String()); err != nil {
			return err
		}
	case bsontype.Double:
		f, err := vr.ReadDouble()
		if err != nil {
			return err
		}
		m = models.NewMoney(f)
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		if err != nil {
			return err
		}
		m = models.NewMoney(float64(i))
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		if err != nil {
			return err
		}
		m = models.NewMoney(float64(i))
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode %v into Money", vr.Type())
	}
	val.Set(reflect.ValueOf(m))
	return nil
}

func encodeDate(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDate {
		return bsoncodec.ValueEncoderError{Name: "DateEncodeValue", Types: []reflect.Type{tDate}, Received: val}
	}
	t := time.Time(val.Interface().(datatypes.Date))
	return vw.WriteDateTime(t.UnixMilli())
}

func decodeDate(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDate {
		return bsoncodec.ValueDecoderError{Name: "DateDecodeValue", Types: []reflect.Type{tDate}, Received: val}
	}

	var t time.Time
	switch vr.Type() {
	case bsontype.DateTime:
		ms, err := vr.ReadDateTime()
		if err != nil {
			return err
		}
		t = time.UnixMilli(ms).UTC()
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot decode %v into Date", vr.Type())
	}
	val.Set(reflect.ValueOf(datatypes.Date(t)))
	return nil
}
