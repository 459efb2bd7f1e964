// Package stats implements the numeric routines behind the opening analyses.
//
// # Descriptive statistics
//
// Mean, StandardDeviation and Standardize operate over dense slot slices in
// which a zero slot means "not observed". The observation count n is always
// the number of non-zero slots:
//
//	mean, err := stats.Mean(dist)
//	sd, err := stats.StandardDeviation(dist, stats.ConventionInherited)
//	z, err := stats.Standardize(dist, mean, sd)
//
// ConventionInherited sums squared deviations over every slot, zero slots
// included, before dividing by n. ConventionObserved sums over the non-zero
// slots only.
//
// # Correlation and significance
//
//	r, err := stats.PearsonCorrelation(x, y)
//	res, err := stats.FisherTest(rWhite, rBlack, n, stats.DefaultFisherOptions())
//
// FisherInherited transforms the first coefficient twice, so its statistic is
// zero for any finite coefficient. FisherCorrected transforms both.
//
// # Normal distribution
//
// Erf uses Abramowitz and Stegun formula 7.1.26 (maximum absolute error about
// 1.5e-7); NormalCDF is built on it and is symmetric by construction.
package stats
