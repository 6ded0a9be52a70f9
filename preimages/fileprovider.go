// Copyright 2025 The sdecode Authors
// This file is part of sdecode.
//
// sdecode is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sdecode is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sdecode. If not, see <http://www.gnu.org/licenses/>.

package preimages

import (
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// FileProvider loads a preimages side table — the kind of artifact an
// execution-trace inspector gathers, out of scope for this module — from a
// JSON file on an afero.Fs, so production code can point it at afero.OsFs
// while tests point it at afero.NewMemMapFs(). Once loaded it answers
// queries as the embedded MemoryProvider holding the file's entries.
type FileProvider struct {
	*MemoryProvider
}

// fileRecord is the on-disk JSON shape: a flat list of hex-encoded
// image/preimage pairs.
type fileRecord struct {
	Image    string `json:"image"`
	Preimage string `json:"preimage"`
}

// LoadFileProvider reads path from fs and parses it as a JSON array of
// fileRecord entries.
func LoadFileProvider(fs afero.Fs, path string) (*FileProvider, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("sdecode: reading preimages file %q: %w", path, err)
	}

	var records []fileRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("sdecode: parsing preimages file %q: %w", path, err)
	}

	provider := NewMemoryProvider()
	for _, rec := range records {
		imageBytes, err := hex.DecodeString(trimHexPrefix(rec.Image))
		if err != nil || len(imageBytes) != 32 {
			return nil, fmt.Errorf("sdecode: preimages file %q: invalid image %q", path, rec.Image)
		}
		preimageBytes, err := hex.DecodeString(trimHexPrefix(rec.Preimage))
		if err != nil {
			return nil, fmt.Errorf("sdecode: preimages file %q: invalid preimage %q", path, rec.Preimage)
		}
		var image Image
		copy(image[:], imageBytes)
		provider.InsertUnchecked(image, preimageBytes)
	}

	return &FileProvider{MemoryProvider: provider}, nil
}

// SaveFileProvider persists a MemoryProvider's contents to path as JSON, the
// inverse of LoadFileProvider.
func SaveFileProvider(fs afero.Fs, path string, provider *MemoryProvider) error {
	provider.ensureSorted()
	records := make([]fileRecord, 0, len(provider.sorted))
	for _, image := range provider.sorted {
		records = append(records, fileRecord{
			Image:    "0x" + hex.EncodeToString(image[:]),
			Preimage: "0x" + hex.EncodeToString(provider.byImage[image]),
		})
	}

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("sdecode: encoding preimages file %q: %w", path, err)
	}

	if err := afero.WriteFile(fs, path, raw, 0o644); err != nil {
		return fmt.Errorf("sdecode: writing preimages file %q: %w", path, err)
	}
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
