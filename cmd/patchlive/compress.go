package main

import (
	"os"

	"github.com/klauspost/compress/zstd"
)

// writePatchFile writes data to path, zstd-compressing it when asked.
func writePatchFile(path string, data []byte, compressed bool) error {
	if compressed {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		defer enc.Close()
		data = enc.EncodeAll(data, nil)
	}
	return os.WriteFile(path, data, 0o644)
}

// readPatchFile reads path, zstd-decompressing it when asked.
func readPatchFile(path string, compressed bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !compressed {
		return data, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
