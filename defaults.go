package multidict

import (
	"github.com/go-ini/ini"
	"github.com/pkg/errors"
)

// LoadDefaults reads the headers of an ini section. source is anything
// ini.LoadSources accepts: a file name, []byte or io.ReadCloser. Repeated
// keys become repeated headers, in file order. An empty section name
// selects the default section.
//
//	[headers]
//	Server = multidict
//	Set-Cookie = a=1
//	Set-Cookie = b=2
func LoadDefaults(source interface{}, section string) (Headers, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, source)
	if err != nil {
		return nil, errors.Wrap(err, "load default headers")
	}
	if section == "" {
		section = ini.DEFAULT_SECTION
	}
	sec, err := cfg.GetSection(section)
	if err != nil {
		return nil, errors.Wrapf(err, "default headers")
	}

	var hs Headers
	for _, key := range sec.Keys() {
		for _, v := range key.ValueWithShadows() {
			hs = append(hs, Header{key.Name(), v})
		}
	}
	return hs, nil
}
