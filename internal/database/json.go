package database

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/uptrace/bun/extra/bunjson"
)

func init() { //nolint:gochecknoinits // bun reads the provider on every JSON column
	bunjson.SetProvider(sonicProvider{})
}

// sonicProvider encodes bun JSON columns with sonic using encoding/json compatible settings.
type sonicProvider struct{}

func (sonicProvider) Marshal(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}

func (sonicProvider) Unmarshal(data []byte, v any) error {
	return sonic.ConfigStd.Unmarshal(data, v)
}

func (sonicProvider) NewEncoder(w io.Writer) bunjson.Encoder {
	return sonic.ConfigStd.NewEncoder(w)
}

func (sonicProvider) NewDecoder(r io.Reader) bunjson.Decoder {
	return sonic.ConfigStd.NewDecoder(r)
}
