package config

import (
	"os"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
)

// DefaultConfigTemplate is written by `apiref init`. It documents every
// commonly tuned field with its default value.
const DefaultConfigTemplate = `# apiref configuration
project:
  # Published package name; examples importing it are rewritten to the
  # local source tree before type-checking.
  name: my-project
  sourceDir: src

source:
  globs:
    - src/**/*.ts
  exclude: []

output:
  dir: docs

build:
  # positive integer, "auto" or "unbounded"
  concurrency: auto
  typeCheck:
    enabled: true
    command: tsc

site:
  # title defaults to the project name
  theme: pmarsceill/just-the-docs
  searchEnabled: true
  # homepage: https://example.com/my-project

# history:
#   path: .apiref/history.db

logging:
  level: info
  format: text
`

// Init writes the default configuration file at path. An existing file is
// only replaced when force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return aerrors.New(aerrors.CategoryConfig, aerrors.SeverityFatal,
				"configuration file already exists, use --force to overwrite").
				WithContext("path", path)
		}
	}
	if err := os.WriteFile(path, []byte(DefaultConfigTemplate), 0o644); err != nil {
		return aerrors.WriteFileFailed(err, path)
	}
	return nil
}
