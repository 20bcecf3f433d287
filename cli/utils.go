package cli

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"go.viam.com/xformop/spatialmath"
)

// printf prints a message with no prefix.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck // no need to check error when writing
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a message prefixed with a bold yellow "Warning: ".
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck // no need to check error when writing
	fmt.Fprintf(w, "\x1b[1;33mWarning:\x1b[0m "+format+"\n", a...)
}

// printMatrix prints m one row per line.
func printMatrix(w io.Writer, m mgl64.Mat4) {
	rows := spatialmath.MatrixRows(m)
	for r := 0; r < 4; r++ {
		printf(w, "  %s", formatRow(rows[r*4:r*4+4]))
	}
}
