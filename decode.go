package multidict

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"
	enTranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

// TagName is the struct tag read by Decode and Bind.
const TagName = "form"

var (
	trans    ut.Translator
	validate = validator.New()

	stringsType = reflect.TypeOf([]string(nil))
)

func init() {
	ent := en.New()
	trans, _ = ut.New(ent, ent).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
	// report fields by their form name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(TagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Decode fills the struct pointed to by out from src. Slice fields receive
// every value of their key, other fields the last one. Strings are
// converted to the field type where possible.
func Decode(src Source, out interface{}) error {
	input := make(map[string]interface{})
	for _, it := range src.Items() {
		input[it.Key] = src.GetList(it.Key)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       lastValueHook,
		WeaklyTypedInput: true,
		TagName:          TagName,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	return errors.Wrap(dec.Decode(input), "decode")
}

// Bind decodes src into out and validates the result against its
// `validate` tags. The first failed rule is returned as a readable error.
func Bind(src Source, out interface{}) error {
	if err := Decode(src, out); err != nil {
		return err
	}
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return errors.New(verrs[0].Translate(trans))
	}
	return errors.Wrap(err, "validate")
}

func lastValueHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from != stringsType {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Slice, reflect.Array, reflect.Interface:
		return data, nil
	}
	list := data.([]string)
	if len(list) == 0 {
		return "", nil
	}
	return list[len(list)-1], nil
}
