// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/tessera3d/tessera/base/errors"
	"github.com/tessera3d/tessera/math32"
)

var (
	vector2Type  = reflect.TypeFor[math32.Vector2]()
	vector3Type  = reflect.TypeFor[math32.Vector3]()
	durationType = reflect.TypeFor[time.Duration]()
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values, recursing into nested
// structs. Errors are automatically logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	val := reflect.ValueOf(cfg)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return errors.Log(fmt.Errorf("config.SetFromDefaults: need a pointer to a struct, got %T", cfg))
	}
	return errors.Log(setFromDefaultTags(val.Elem()))
}

func setFromDefaultTags(val reflect.Value) error {
	typ := val.Type()
	var errs []error
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok || def == "" {
			if f.Type.Kind() == reflect.Struct && f.Type != vector2Type && f.Type != vector3Type {
				if err := setFromDefaultTags(fv); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		if err := setFromString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("field %s.%s from %q: %w", typ.Name(), f.Name, def, err))
		}
	}
	return errors.Join(errs...)
}

// setFromString sets the given settable value from its string form.
func setFromString(fv reflect.Value, s string) error {
	switch fv.Type() {
	case vector2Type:
		var v math32.Vector2
		if _, err := fmt.Sscan(s, &v.X, &v.Y); err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case vector3Type:
		var v math32.Vector3
		if _, err := fmt.Sscan(s, &v.X, &v.Y, &v.Z); err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(v))
		return nil
	case durationType:
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		fv.SetInt(int64(d))
		return nil
	}
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 0, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		x, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(x)
	default:
		return fmt.Errorf("unsupported kind %v", fv.Kind())
	}
	return nil
}
