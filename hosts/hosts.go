package hosts

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/whales-names/whales/util"
	"github.com/whales-names/whales/xlog"

	atomicfile "github.com/natefinch/atomic"
)

var ErrFileNotFound = errors.New("hosts file does not exist")

// WriteMode selects how the updated content is put in place.
type WriteMode uint8

const (
	// WriteAtomic writes a temporary file next to the target and renames it over.
	// The target directory must be writable.
	WriteAtomic WriteMode = iota
	// WriteTruncate rewrites the file in place, keeping its inode. Bind
	// mounted hosts files can not be renamed over.
	WriteTruncate
)

var writeModeEnum = util.NewEnum(map[WriteMode]string{
	WriteAtomic:   "atomic",
	WriteTruncate: "truncate",
})

func (m WriteMode) String() string { return writeModeEnum.ToString(m) }
func (m WriteMode) MarshalText() ([]byte, error) {
	return writeModeEnum.MarshalText(m)
}
func (m *WriteMode) UnmarshalText(text []byte) error {
	return writeModeEnum.UnmarshalText(m, text)
}

type options struct {
	path     string
	platform Platform
	mode     WriteMode
	logger   *xlog.Logger
}

type Option func(*options)

// WithPath sets an explicit hosts file path, skipping default resolution.
func WithPath(path string) Option { return func(o *options) { o.path = path } }

// WithPlatform sets the platform used for the default path and line breaks.
func WithPlatform(p Platform) Option { return func(o *options) { o.platform = p } }

func WithWriteMode(m WriteMode) Option { return func(o *options) { o.mode = m } }
func WithLogger(l *xlog.Logger) Option { return func(o *options) { o.logger = l } }

// Updater maintains the managed block of a single hosts file.
//
// Updates are a plain read followed by a write with no lock in between,
// concurrent callers targeting the same file must serialize themselves.
type Updater struct {
	path   string
	eol    string
	mode   WriteMode
	logger *xlog.Logger
}

// New creates an updater. Without WithPath the default path of the
// platform is used, failing with ErrUnsupportedPlatform for unknown ones.
func New(opts ...Option) (*Updater, error) {
	o := options{platform: CurrentPlatform()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.path == "" {
		path, err := o.platform.DefaultPath()
		if err != nil {
			return nil, err
		}
		o.path = path
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}
	return &Updater{
		path:   o.path,
		eol:    o.platform.LineSeparator(),
		mode:   o.mode,
		logger: o.logger,
	}, nil
}

func (u *Updater) Path() string          { return u.path }
func (u *Updater) LineSeparator() string { return u.eol }

func (u *Updater) read() (string, error) {
	if _, err := os.Stat(u.path); err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrFileNotFound, "hosts file %s", u.path)
		}
		return "", err
	}
	data, err := os.ReadFile(u.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (u *Updater) write(content string) error {
	if u.mode == WriteTruncate {
		return os.WriteFile(u.path, []byte(content), 0644)
	}
	return replaceFile(u.path, []byte(content))
}

// replaceFile writes data next to path and renames it over path, keeping
// the file mode. Errors are the ones of the failing os call.
func replaceFile(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return atomicfile.ReplaceFile(tmp.Name(), path)
}

// Update replaces the managed block with entries. The file is always
// rewritten, even if the content did not change.
func (u *Updater) Update(entries []Entry) error {
	content, err := u.read()
	if err != nil {
		return err
	}
	content = Apply(content, entries, u.eol)
	if err := u.write(content); err != nil {
		return err
	}
	u.logger.Debug().Str("path", u.path).Int("entries", len(entries)).Msg("Hosts file updated")
	return nil
}

// Entries returns the entries currently listed in the managed block.
func (u *Updater) Entries() ([]Entry, error) {
	content, err := u.read()
	if err != nil {
		return nil, err
	}
	entries, _ := ParseRegion(content)
	return entries, nil
}

// Plan is the outcome an Update would have.
type Plan struct {
	Path      string
	Old, New  string // Complete file content
	OldBody   string // Managed lines before the update, empty if there was no block
	NewBody   string
	HasRegion bool
}

func (p Plan) Changed() bool { return p.Old != p.New }

// Plan computes the new content without writing it.
func (u *Updater) Plan(entries []Entry) (Plan, error) {
	content, err := u.read()
	if err != nil {
		return Plan{}, err
	}
	p := Plan{Path: u.path, Old: content, New: Apply(content, entries, u.eol)}
	if r, ok := FindRegion(p.Old); ok {
		p.HasRegion = true
		p.OldBody = p.Old[r.BodyStart:r.BodyEnd]
	}
	if r, ok := FindRegion(p.New); ok {
		p.NewBody = p.New[r.BodyStart:r.BodyEnd]
	}
	return p, nil
}
