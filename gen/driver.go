package gen

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/registry"
)

// Config holds the generation parameters the driver needs beyond the
// registry and the backend.
type Config struct {
	// OutputRoot is the directory artifact paths are rooted at
	OutputRoot string
	// Prefix is prepended to every generated class name's final segment
	Prefix string
}

// Driver emits every artifact for one registry through one backend.
// Generation is a pure function of (registry, prefix, output root, backend):
// identical inputs always yield identical outputs. The first render or
// write failure aborts the run; artifacts already written are not rolled
// back.
type Driver struct {
	backend Backend
	writer  FileWriter
	cfg     Config
	log     *zap.SugaredLogger
}

// NewDriver wires a backend, a file writer, and generation config.
func NewDriver(backend Backend, writer FileWriter, cfg Config, log *zap.SugaredLogger) *Driver {
	return &Driver{backend: backend, writer: writer, cfg: cfg, log: log}
}

// Generate emits one artifact per class plus the API and visitor artifacts.
// It returns the paths written, in emission order.
func (d *Driver) Generate(reg *registry.Registry) ([]string, error) {
	var written []string

	for _, desc := range reg.Classes() {
		path, err := d.emitClass(desc)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	concrete := reg.Concrete()

	apiPath := filepath.Join(d.cfg.OutputRoot, d.backend.APIPath(d.cfg.Prefix))
	text, err := d.backend.RenderAPI(apiContext(d.cfg.Prefix, concrete))
	if err != nil {
		return written, errors.Mark(errors.Wrap(err, "rendering API artifact"), errors.ErrRender)
	}
	if err := d.writer.WriteFile(apiPath, []byte(text)); err != nil {
		return written, err
	}
	d.log.Infow("Generated API artifact", "path", apiPath, "entries", len(concrete))
	written = append(written, apiPath)

	visitorPath := filepath.Join(d.cfg.OutputRoot, d.backend.VisitorPath(d.cfg.Prefix))
	text, err = d.backend.RenderVisitor(visitorContext(d.cfg.Prefix, concrete))
	if err != nil {
		return written, errors.Mark(errors.Wrap(err, "rendering visitor artifact"), errors.ErrRender)
	}
	if err := d.writer.WriteFile(visitorPath, []byte(text)); err != nil {
		return written, err
	}
	d.log.Infow("Generated visitor artifact", "path", visitorPath, "methods", len(concrete))
	written = append(written, visitorPath)

	return written, nil
}

// emitClass renders and writes the artifact for one descriptor.
func (d *Driver) emitClass(desc *registry.ClassDescriptor) (string, error) {
	ctx := classContext(d.cfg.Prefix, desc)

	var text string
	var err error
	if desc.Abstract {
		text, err = d.backend.RenderAbstractClass(ctx)
	} else {
		text, err = d.backend.RenderConcreteClass(ctx)
	}
	if err != nil {
		return "", errors.Mark(
			errors.Wrapf(err, "rendering class %q", ctx.Name), errors.ErrRender)
	}

	path := filepath.Join(d.cfg.OutputRoot, d.backend.ClassPath(ctx.Segments))
	if err := d.writer.WriteFile(path, []byte(text)); err != nil {
		return "", err
	}
	d.log.Infow("Generated class artifact",
		"path", path, "class", ctx.Name, "abstract", desc.Abstract)
	return path, nil
}
