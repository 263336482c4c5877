// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the flag editor.

Spinner (spinner.go) - Animated ASCII spinner shown while a load, save or
launch is running, with elapsed time after the first second.

StatusBar (statusbar.go) - Bottom bar with the last outcome message, an
unsaved-changes marker and key hints. It collapses to fit narrow terminals.

All components take a *styles.Theme and render plain ASCII shapes next to
colors so they stay readable without color support.
*/
package components
