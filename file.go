package expout

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML form of an expectation together with the options of its
// check:
//
//	label: STDOUT
//	unordered: true
//	except: "^Last Changed Date"
//	lines:
//	  - A    foo
//	  - M    bar
type File struct {
	Label     string   `yaml:"label,omitempty"`
	Message   string   `yaml:"message,omitempty"`
	Regexp    bool     `yaml:"regexp,omitempty"`
	Unordered bool     `yaml:"unordered,omitempty"`
	Subset    bool     `yaml:"subset,omitempty"`
	Except    string   `yaml:"except,omitempty"`
	Lines     []string `yaml:"lines"`
}

// ReadFile decodes an expectation file from r. Unknown keys are an error.
func ReadFile(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode expectation: %w", err)
	}
	return &f, nil
}

// LoadFile reads the expectation file with the given name.
func LoadFile(name string) (*File, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := ReadFile(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// Expected returns the expectation described by f.
func (f *File) Expected() *Expected {
	e := &Expected{
		Content:  f.Lines,
		MatchAll: !f.Subset,
	}
	if f.Regexp {
		e.Kind = Pattern
	}
	if f.Unordered {
		e.Order = Unordered
	}
	return e
}

// Options returns the verification options set in f.
func (f *File) Options() (opts []Option) {
	if f.Label != "" {
		opts = append(opts, WithLabel(f.Label))
	}
	if f.Message != "" {
		opts = append(opts, WithMessage(f.Message))
	}
	if f.Except != "" {
		opts = append(opts, WithExcept(f.Except))
	}
	return opts
}

// Verify checks actual against the expectation in f.
func (f *File) Verify(v *Verifier, actual []string, opts ...Option) error {
	return v.Verify(f.Expected(), actual, append(f.Options(), opts...)...)
}

// Write encodes f as YAML to w.
func (f *File) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode expectation: %w", err)
	}
	return enc.Close()
}

// Prepare writes an expectation file to w that expects exactly the output
// read from subj. The options of tmpl are kept, its lines are replaced.
// Regexp templates are rejected because the output is literal text.
func Prepare(w io.Writer, subj io.Reader, tmpl File) error {
	if tmpl.Regexp {
		return configErrorf("cannot prepare regexp expectation from output")
	}
	lines, err := ReadLines(subj)
	if err != nil {
		return fmt.Errorf("read output: %w", err)
	}
	if lines == nil {
		lines = []string{}
	}
	tmpl.Lines = lines
	return tmpl.Write(w)
}
