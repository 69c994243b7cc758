// Package analysis derives read-only insights from segment text: a
// keyword-frequency theme detector, a keyword-based sentiment classifier,
// and the sentiment-to-playback-dynamics mapping.
//
// Everything here is a pure function of the current text; identical input
// always yields an identical ranking. Keyword tables carry both English and
// German terms because scripts arrive in either language.
package analysis
