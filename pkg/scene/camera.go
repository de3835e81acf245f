package scene

import "math"

// Default 3D viewing angles in degrees.
const (
	DefaultElevation = 30
	DefaultAzimuth   = -60
)

// View selects how world points map to the panel plane.
type View struct {
	ThreeD    bool    `json:"three_d"`
	Elevation float64 `json:"elevation"` // degrees above the xy plane
	Azimuth   float64 `json:"azimuth"`   // degrees around the z axis
}

// View3D returns a 3D view at the given angles.
func View3D(elev, azim float64) View {
	return View{ThreeD: true, Elevation: elev, Azimuth: azim}
}

// Project maps p to panel coordinates (x right, y up) and a depth that grows
// toward the viewer.
//
// 2D views drop z. 3D views are orthographic: the camera circles the z axis at
// Azimuth and looks down at Elevation, so azimuth 0 looks along -x.
func (v View) Project(p Vec3) (x, y, depth float64) {
	if !v.ThreeD {
		return p.X, p.Y, p.Z
	}
	az := v.Azimuth * math.Pi / 180
	el := v.Elevation * math.Pi / 180
	ca, sa := math.Cos(az), math.Sin(az)
	ce, se := math.Cos(el), math.Sin(el)

	x = -sa*p.X + ca*p.Y
	y = -se*ca*p.X - se*sa*p.Y + ce*p.Z
	depth = ce*ca*p.X + ce*sa*p.Y + se*p.Z
	return x, y, depth
}
