// Package domain turns raw GPS measurements into display strings.
//
// # Measurements
//
// Inputs are SI values as the receiver reports them: metres, metres per
// second, degrees, and milliseconds. A value equal to NotAvailable means the
// receiver had no reading and always formats to an empty value and unit.
//
// # Unit systems
//
// Six unit systems fall into three families:
//
//	metric    m/s or km/h     distance m / km, altitude and accuracy m
//	imperial  ft/s or mph     distance ft / mi, altitude and accuracy ft
//	nautical  kn or mph       distance nm, altitude and accuracy ft
//
// Speed uses the exact system; every other kind only looks at the family.
//
// # Precision
//
// Speed, accuracy, altitude and angle bearings round half-up to whole units.
// Average speed keeps one decimal. Distances are tiered by magnitude and
// always floored at their display resolution:
//
//	metric    < 1000 m      whole metres
//	          < 10000 m     km, two decimals
//	          otherwise     km, one decimal
//	imperial  < 1000 ft     whole feet
//	          < 10 mi       mi, two decimals
//	          otherwise     mi, one decimal
//	nautical  < 100 nm      nm, two decimals
//	          otherwise     nm, one decimal
//
// # Directions
//
// Compass bearings use sixteen 22.5° sectors centred on the points, so 11.25°
// already reads NNE and 360° reads N again. Latitude and longitude are shown
// unsigned with a hemisphere label; zero counts as north and east.
package domain
