// Package scenescript parses the textual, line-oriented scene description
// consumed at asset-load time: it names procedural generators, the blocks
// a block-graph build should start from, and the CSG operations that
// combine named solids. The syntax is this project's own; the spec pins
// only the entities a parser must produce, not the grammar.
package scenescript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Generator names a procedural solid generator and its parameters,
// e.g. "generator tower kind=tower height=12".
type Generator struct {
	Name string
	Kind string
	Args map[string]string
}

// BlockDecl is one block-graph input block named by the script.
type BlockDecl struct {
	Name       string
	Center     mgl32.Vec3
	Half       mgl32.Vec3
	Rotation   mgl32.Quat
	Group      int
	Shape      string
	Crease     uint16
	Attraction uint16

	// Subdiv is a single per-block subdivision nibble (sx in bits 0-1, sy
	// in bits 2-3) applied uniformly to all six faces; the script grammar
	// trades per-face granularity for a compact directive, where the
	// block-graph's own Block.FaceSubdivisions stays fully per-face.
	Subdiv byte
}

// CSGOp combines two named solids into a result solid via union,
// intersection, or difference.
type CSGOp struct {
	Op     string
	Result string
	A, B   string
}

// Script is the parsed contents of a scene description: every generator,
// block, and CSG operation it named, in declaration order.
type Script struct {
	Generators []Generator
	Blocks     []BlockDecl
	Ops        []CSGOp
}

// Parse reads a scene script. Blank lines and lines starting with # are
// ignored; every other line begins with a directive keyword.
func Parse(r io.Reader) (*Script, error) {
	script := &Script{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		directive, rest := fields[0], fields[1:]

		var err error
		switch directive {
		case "generator":
			err = parseGenerator(script, rest)
		case "block":
			err = parseBlock(script, rest)
		case "csg":
			err = parseCSGOp(script, rest)
		default:
			err = fmt.Errorf("unknown directive %q", directive)
		}
		if err != nil {
			return nil, fmt.Errorf("scenescript: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scenescript: %w", err)
	}
	return script, nil
}

func parseGenerator(script *Script, fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("generator: missing name")
	}
	kv := splitKV(fields[1:])
	script.Generators = append(script.Generators, Generator{
		Name: fields[0],
		Kind: kv["kind"],
		Args: kv,
	})
	return nil
}

func parseBlock(script *Script, fields []string) error {
	if len(fields) < 1 {
		return fmt.Errorf("block: missing name")
	}
	kv := splitKV(fields[1:])

	center, err := parseVec3(kv["center"])
	if err != nil {
		return fmt.Errorf("block %s: center: %w", fields[0], err)
	}
	half, err := parseVec3(kv["half"])
	if err != nil {
		return fmt.Errorf("block %s: half: %w", fields[0], err)
	}
	rotation, err := parseQuatOr(kv["rot"], mgl32.QuatIdent())
	if err != nil {
		return fmt.Errorf("block %s: rot: %w", fields[0], err)
	}
	group, err := parseIntOr(kv["group"], 0)
	if err != nil {
		return fmt.Errorf("block %s: group: %w", fields[0], err)
	}
	crease, err := parseHex16(kv["crease"])
	if err != nil {
		return fmt.Errorf("block %s: crease: %w", fields[0], err)
	}
	attraction, err := parseHex16(kv["attract"])
	if err != nil {
		return fmt.Errorf("block %s: attract: %w", fields[0], err)
	}
	subdiv, err := parseHexByteOr(kv["subdiv"], 0)
	if err != nil {
		return fmt.Errorf("block %s: subdiv: %w", fields[0], err)
	}

	script.Blocks = append(script.Blocks, BlockDecl{
		Name:       fields[0],
		Center:     center,
		Half:       half,
		Rotation:   rotation,
		Group:      group,
		Shape:      kv["shape"],
		Crease:     crease,
		Attraction: attraction,
		Subdiv:     subdiv,
	})
	return nil
}

func parseCSGOp(script *Script, fields []string) error {
	// csg <op> <result> = <a> <b>
	if len(fields) != 5 || fields[2] != "=" {
		return fmt.Errorf("csg: expected \"<op> <result> = <a> <b>\", got %q", strings.Join(fields, " "))
	}
	op := fields[0]
	switch op {
	case "union", "intersection", "difference":
	default:
		return fmt.Errorf("csg: unknown operation %q", op)
	}
	script.Ops = append(script.Ops, CSGOp{Op: op, Result: fields[1], A: fields[3], B: fields[4]})
	return nil
}

func splitKV(fields []string) map[string]string {
	kv := make(map[string]string, len(fields))
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			kv[f] = ""
			continue
		}
		kv[key] = value
	}
	return kv
}

func parseVec3(s string) (mgl32.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("want \"x,y,z\", got %q", s)
	}
	var v mgl32.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseQuatOr parses a "x,y,z,w" quaternion, returning def if s is empty.
func parseQuatOr(s string, def mgl32.Quat) (mgl32.Quat, error) {
	if s == "" {
		return def, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return mgl32.Quat{}, fmt.Errorf("want \"x,y,z,w\", got %q", s)
	}
	var v [4]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mgl32.Quat{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}, nil
}

func parseHexByteOr(s string, def byte) (byte, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseIntOr(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func parseHex16(s string) (uint16, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
