// Package samples ships the example consultation used by the UI, the CLI and tests.
package samples

import _ "embed"

//go:embed transcript.txt
var Transcript string

//go:embed dialogue.txt
var Dialogue string
