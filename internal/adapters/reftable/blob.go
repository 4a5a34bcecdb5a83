package reftable

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

// ErrCorrupt marks a reference resource that cannot be decoded.
var ErrCorrupt = errors.New("corrupt reference data")

//go:embed data/transitions.msgpack
var embeddedBlob []byte

// record is the on-disk layout of one transition.
type record struct {
	_msgpack struct{} `msgpack:",as_array"`

	Parent      string
	Daughter    string
	DecayType   string
	Radiation   string
	Energy      string
	Uncertainty string
	Intensity   float64
	Lower       float64
	Upper       float64
}

// DecodeBlob decodes a MessagePack array of transition records.
func DecodeBlob(data []byte) ([]entities.Transition, error) {
	var records []record
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	transitions := make([]entities.Transition, 0, len(records))
	for i, r := range records {
		radiation, err := entities.RadiationTypeFromCode(r.Radiation)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		transitions = append(transitions, entities.Transition{
			Parent:          r.Parent,
			Daughter:        r.Daughter,
			Decay:           entities.DecayID(r.DecayType),
			Radiation:       radiation,
			EnergyText:      r.Energy,
			UncertaintyText: r.Uncertainty,
			Intensity:       r.Intensity,
			LowerKeV:        r.Lower,
			UpperKeV:        r.Upper,
		})
	}
	return transitions, nil
}

// EncodeBlob is the inverse of DecodeBlob.
func EncodeBlob(transitions []entities.Transition) ([]byte, error) {
	records := make([]record, len(transitions))
	for i, t := range transitions {
		records[i] = record{
			Parent:      t.Parent,
			Daughter:    t.Daughter,
			DecayType:   string(t.Decay),
			Radiation:   t.Radiation.Code(),
			Energy:      t.EnergyText,
			Uncertainty: t.UncertaintyText,
			Intensity:   t.Intensity,
			Lower:       t.LowerKeV,
			Upper:       t.UpperKeV,
		}
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return buf.Bytes(), nil
}

// EmbeddedSource serves the table compiled into the binary.
type EmbeddedSource struct{}

// NewEmbeddedSource creates the default reference source.
func NewEmbeddedSource() *EmbeddedSource { return &EmbeddedSource{} }

func (s *EmbeddedSource) Load(ctx context.Context) ([]entities.Transition, error) {
	return DecodeBlob(embeddedBlob)
}

func (s *EmbeddedSource) Name() string { return "embedded" }

// BlobFileSource reads a blob with the embedded layout from disk.
type BlobFileSource struct {
	path string
}

// NewBlobFileSource creates a source for the blob at path.
func NewBlobFileSource(path string) *BlobFileSource {
	return &BlobFileSource{path: path}
}

func (s *BlobFileSource) Load(ctx context.Context) ([]entities.Transition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return DecodeBlob(data)
}

func (s *BlobFileSource) Name() string { return "blob:" + s.path }

// Save writes transitions as a blob, so a table can be moved between formats.
func (s *BlobFileSource) Save(ctx context.Context, transitions []entities.Transition) error {
	data, err := EncodeBlob(transitions)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	return nil
}
