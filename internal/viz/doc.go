// Package viz renders wave runs in the terminal and as SVG.
//
//   - [Summary]: lipgloss panel with the derived state of a run
//   - [PlotSeries], [PlotGauges], [PlotSpectrum]: asciigraph charts
//   - [Model]: Bubble Tea view animating the free surface along a transect
//   - [Canvas]: Braille pixel canvas used by the live view
//   - [Heatmap]: plan view of the surface elevation
//   - [SeriesSVG], [CanvasSVG]: SVG export of series and surface profiles
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart at t = 0
//	+/-   - Double/halve playback speed
//	→     - Step one sample interval
//	T     - Cycle color themes
package viz
