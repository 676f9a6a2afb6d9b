// Package analysis provides diagnostics for synthesized elevation records.
//
// Spectral tools estimate the spectrum back from a record and integrate it:
//
//   - [Periodogram]: one-sided spectral density in rad/s via FFT
//   - [BandAverage]: smooths a periodogram over adjacent bins
//   - [SpectralMoment]: m_n = ∫ w^n S(w) dw
//   - [SignificantHeight]: Hs = 4 std(eta)
//
// Wave-by-wave tools split a record at zero up-crossings:
//
//   - [ZeroUpCrossings]: individual wave heights and periods
//   - [Summarize]: Hmax, H1/3 and the mean zero-crossing period
//   - [ScatterASCII]: height-period scatter plot for the terminal
//
// # Checking a synthesis
//
// A long irregular record should reproduce the requested spectrum:
//
//	w, s := analysis.Periodogram(st.Origin.Eta, p.Dt)
//	hs := 4 * math.Sqrt(analysis.SpectralMoment(w, s, 0))
package analysis
