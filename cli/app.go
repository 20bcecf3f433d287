// Package cli contains the xformop command line tool, which evaluates and edits transform op
// stacks given as arguments.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagDebug = "debug"
	generalFlagTime  = "time"

	evalFlagIndex = "index"

	editFlagTarget    = "target"
	editFlagMode      = "mode"
	editFlagSpace     = "space"
	editFlagTranslate = "translate"
	editFlagRotateX   = "rotate-x"
	editFlagRotateY   = "rotate-y"
	editFlagRotateZ   = "rotate-z"
	editFlagScale     = "scale"
)

const opsUsage = "OP [OP...]\n\n" +
	"   OP is KIND[:SUFFIX][@PRECISION][!invert][=V1,V2,...], e.g. translate:pivot@float=1,2,3.\n" +
	"   KIND is one of translate, scale, rotateX..rotateZ, rotateXYZ..rotateZYX, orient, transform;\n" +
	"   PRECISION is double, float or half. Orient values are w,x,y,z and transform values are\n" +
	"   16 numbers row by row. An op without values is unauthored."

var app = &cli.App{
	Name:            "xformop",
	Usage:           "evaluate and edit transform op stacks",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			EnvVars: []string{"XFORMOP_DEBUG"},
			Usage:   "enable debug logging",
		},
		&cli.Float64Flag{
			Name:    generalFlagTime,
			EnvVars: []string{"XFORMOP_TIME"},
			Usage:   "read and write values at time `T` instead of the default time",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "eval",
			Usage:     "print the coordinate frames of an op stack",
			ArgsUsage: opsUsage,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  evalFlagIndex,
					Value: -1,
					Usage: "print only the frame before op `N`; the number of ops gives the local transformation",
				},
			},
			Action: EvalAction,
		},
		{
			Name:      "edit",
			Usage:     "apply one translate, rotate or scale edit to an op of a stack",
			ArgsUsage: opsUsage,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     editFlagTarget,
					Required: true,
					Usage:    "index of the op to edit",
				},
				&cli.StringFlag{
					Name:    editFlagMode,
					EnvVars: []string{"XFORMOP_MODE"},
					Usage:   "manipulation mode (translate, rotate or scale); required for transform ops",
				},
				&cli.StringFlag{
					Name:    editFlagSpace,
					EnvVars: []string{"XFORMOP_SPACE"},
					Value:   "transform",
					Usage:   "space the delta is expressed in: transform, parent or world",
				},
				&cli.StringFlag{
					Name:  editFlagTranslate,
					Usage: "translate by `X,Y,Z`",
				},
				&cli.Float64Flag{
					Name:  editFlagRotateX,
					Usage: "rotate about X by `DEGREES`",
				},
				&cli.Float64Flag{
					Name:  editFlagRotateY,
					Usage: "rotate about Y by `DEGREES`",
				},
				&cli.Float64Flag{
					Name:  editFlagRotateZ,
					Usage: "rotate about Z by `DEGREES`",
				},
				&cli.StringFlag{
					Name:  editFlagScale,
					Usage: "scale by `X,Y,Z` or by a single uniform factor",
				},
			},
			Action: EditAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
