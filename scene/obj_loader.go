package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
)

// objRef is one corner of a face: 0-based position, UV and normal indices,
// -1 when absent.
type objRef struct{ v, vt, vn int }

type objGroup struct {
	name    string
	matName string
	faces   [][3]objRef
}

// LoadOBJ parses a Wavefront .obj file and returns one Mesh per object or
// group. A material library named by "mtllib" is loaded from the same
// directory; only diffuse colour and diffuse map are used.
func LoadOBJ(path string) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	meshes, err := ParseOBJ(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return meshes, nil
}

// ParseOBJ reads OBJ data from r. dir resolves material libraries; pass ""
// to ignore them.
func ParseOBJ(r io.Reader, dir string) ([]*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		groups    []objGroup
	)
	materials := map[string]*Material{}
	cur := objGroup{name: "default"}

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if fields[0] == "v" {
				positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
			} else {
				normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
			}

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})

		case "o", "g":
			if len(cur.faces) > 0 {
				groups = append(groups, cur)
			}
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = objGroup{name: name, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				cur.matName = fields[1]
			}

		case "mtllib":
			if len(fields) > 1 && dir != "" {
				loaded, err := loadMTL(filepath.Join(dir, fields[1]), dir)
				if err != nil {
					renderer.Logger().Warn("obj: material library skipped", "file", fields[1], "err", err)
					continue
				}
				for k, m := range loaded {
					materials[k] = m
				}
			}

		case "f":
			if len(fields) < 4 {
				continue
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				refs = append(refs, parseObjRef(tok, len(positions), len(uvs), len(normals)))
			}
			// Fan triangulation.
			for i := 1; i+1 < len(refs); i++ {
				cur.faces = append(cur.faces, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(cur.faces) > 0 {
		groups = append(groups, cur)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no geometry")
	}

	meshes := make([]*Mesh, 0, len(groups))
	for _, g := range groups {
		m := buildOBJMesh(g, positions, normals, uvs)
		if mat, ok := materials[g.matName]; ok {
			m.Material = mat
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseObjRef parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices
// count back from the end of the respective pool.
func parseObjRef(tok string, nv, nvt, nvn int) objRef {
	idx := func(s string, n int) int {
		if s == "" {
			return -1
		}
		i, err := strconv.Atoi(s)
		switch {
		case err != nil || i == 0:
			return -1
		case i < 0:
			return n + i
		}
		return i - 1
	}
	ref := objRef{-1, -1, -1}
	parts := strings.Split(tok, "/")
	ref.v = idx(parts[0], nv)
	if len(parts) > 1 {
		ref.vt = idx(parts[1], nvt)
	}
	if len(parts) > 2 {
		ref.vn = idx(parts[2], nvn)
	}
	return ref
}

// buildOBJMesh deduplicates face corners into an indexed mesh. Normals are
// generated when the file has none.
func buildOBJMesh(g objGroup, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) *Mesh {
	seen := map[objRef]uint32{}
	var vertices []Vertex
	indices := make([]uint32, 0, len(g.faces)*3)

	for _, face := range g.faces {
		for _, ref := range face {
			if idx, ok := seen[ref]; ok {
				indices = append(indices, idx)
				continue
			}
			v := Vertex{Normal: mgl32.Vec3{0, 1, 0}, Color: White}
			if ref.v >= 0 && ref.v < len(positions) {
				v.Position = positions[ref.v]
			}
			if ref.vn >= 0 && ref.vn < len(normals) {
				v.Normal = normals[ref.vn]
			}
			if ref.vt >= 0 && ref.vt < len(uvs) {
				v.UV = uvs[ref.vt]
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, v)
			seen[ref] = idx
			indices = append(indices, idx)
		}
	}

	if len(normals) == 0 {
		generateNormals(vertices, indices)
	}
	return NewMesh(g.name, vertices, indices)
}

// generateNormals writes area-weighted vertex normals.
func generateNormals(vertices []Vertex, indices []uint32) {
	acc := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(p0).Cross(vertices[i2].Position.Sub(p0))
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}
	for i, n := range acc {
		if n.Len() > 0 {
			vertices[i].Normal = n.Normalize()
		}
	}
}

func loadMTL(path, dir string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats := map[string]*Material{}
	var cur *Material
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = NewMaterial(fields[1], mgl32.Vec3{1, 1, 1})
				mats[cur.Name] = cur
			}
		case "Kd":
			if cur == nil {
				continue
			}
			if v, err := parseFloats(fields[1:], 3); err == nil {
				cur.Albedo = mgl32.Vec3{v[0], v[1], v[2]}
			}
		case "map_Kd":
			if cur == nil || len(fields) < 2 {
				continue
			}
			tex, err := LoadTexture(filepath.Join(dir, fields[len(fields)-1]))
			if err != nil {
				renderer.Logger().Warn("obj: diffuse map skipped", "material", cur.Name, "err", err)
				continue
			}
			cur.AlbedoTexture = tex
		}
	}
	return mats, scanner.Err()
}
