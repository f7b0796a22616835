package geo

import "math"

// WGS84 ellipsoid and UTM projection constants.
const (
	wgs84SemiMajor   = 6378137.0
	wgs84Flattening  = 1.0 / 298.257223563
	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0 // southern hemisphere only
	degreesToRadians = math.Pi / 180.0
)

// ToPlanar applies the UTM forward projection for the zone to a single
// geodetic point. The series expansion is the standard one (Snyder,
// "Map Projections: A Working Manual", eqs 8-9 to 8-14) and is accurate
// to well under a meter anywhere inside the zone.
func (z Zone) ToPlanar(p GeodeticPoint) PlanarPoint {
	e2 := wgs84Flattening * (2 - wgs84Flattening)
	ep2 := e2 / (1 - e2)

	phi := p.Lat * degreesToRadians
	lam := p.Lon * degreesToRadians
	lam0 := z.CentralMeridian() * degreesToRadians

	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)
	tanPhi := math.Tan(phi)

	n := wgs84SemiMajor / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	a := cosPhi * (lam - lam0)

	m := meridianArc(phi, e2)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	x := utmScaleFactor*n*(a+
		(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*ep2)*a5/120) + utmFalseEasting

	y := utmScaleFactor * (m + n*tanPhi*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*ep2)*a6/720))

	if !z.North {
		y += utmFalseNorthing
	}
	return PlanarPoint{X: x, Y: y}
}

// meridianArc returns the ellipsoidal arc length from the equator to
// latitude phi (radians).
func meridianArc(phi, e2 float64) float64 {
	e4 := e2 * e2
	e6 := e4 * e2
	return wgs84SemiMajor * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
