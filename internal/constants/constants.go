// Package constants holds the CODATA 2018 values the models are written in.
package constants

import "math"

const ElementaryCharge = 1.602176634e-19            // [C]
const VacuumPermittivity float64 = 8.8541878128e-12 // [F m^-1]
const ProtonMass float64 = 1.67262192369e-27        // [kg]
const ElectronVolt = ElementaryCharge               // [J]
const MeV = 1e6 * ElectronVolt                      // [J]
const Femtometre = 1e-15                            // [m]

// Coulomb is k = 1/(4 pi eps0) [N m^2 C^-2].
const Coulomb = 1 / (4 * math.Pi * VacuumPermittivity)

// AlphaMass is the four-nucleon approximation of an alpha particle.
const AlphaMass = 4 * ProtonMass // [kg]

const AlphaCharge = 2
