// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package flags

// Default returns the built-in flag catalog in display order.
// Every call returns a fresh slice; callers may mutate it freely.
func Default() []Descriptor {
	return []Descriptor{
		// Core
		{Name: "DFIntTaskSchedulerTargetFps", Description: "FPS Limit", Category: CategoryCore, Enabled: true, Value: Input("144")},

		// Rendering backend
		{Name: "FFlagDebugGraphicsPreferVulkan", Description: "Prefer Vulkan Renderer", Category: CategoryRendering, Enabled: true, Value: Toggle(true)},
		{Name: "FFlagDebugGraphicsPreferOpenGL", Description: "Prefer OpenGL Renderer", Category: CategoryRendering, Enabled: false, Value: Toggle(true)},

		// Lighting technology
		{Name: "DFFlagDebugRenderForceTechnologyVoxel", Description: "Force Voxel Lighting", Category: CategoryLighting, Enabled: false, Value: Toggle(true)},
		{Name: "FFlagDebugForceFutureIsBrightPhase2", Description: "Force ShadowMap Lighting", Category: CategoryLighting, Enabled: false, Value: Toggle(true)},
		{Name: "FFlagDebugForceFutureIsBrightPhase3", Description: "Force Future Lighting", Category: CategoryLighting, Enabled: false, Value: Toggle(true)},

		// Graphics quality
		{Name: "FFlagDebugGraphicsDisablePostFX", Description: "Disable Post-Processing Effects", Category: CategoryQuality, Enabled: true, Value: Toggle(false)},
		{Name: "DFIntPostEffectQualityLevel", Description: "Post Effect Quality (0-4)", Category: CategoryQuality, Enabled: true, Value: Input("4")},
		{Name: "DFIntDebugFRMQualityLevelOverride", Description: "Force Graphics Quality Level (1-21)", Category: CategoryQuality, Enabled: false, Value: Input("21")},
		{Name: "FIntDebugForceMSAASamples", Description: "Force MSAA Samples (0, 1, 2, 4, 8)", Category: CategoryQuality, Enabled: false, Value: Input("4")},

		// Menu & UX
		{Name: "DFIntCanHideGuiGroupId", Description: "Set to a Group ID to enable visibility toggles (Ctrl+Shift+G, etc). Set to 0 to disable.", Category: CategoryMenu, Enabled: true, Value: Input("0")},
		{Name: "FFlagDisableNewIGMinDUA", Description: "Disable New In-Game Menu (Reverts to Old Menu)", Category: CategoryMenu, Enabled: true, Value: Toggle(false)},
		{Name: "FFlagEnableInGameMenuControls", Description: "Enable 'Controls' Button in In-Game Menu", Category: CategoryMenu, Enabled: true, Value: Toggle(false)},

		// Telemetry & UI
		{Name: "FFlagDebugDisplayFPS", Description: "Show FPS Counter", Category: CategoryTelemetry, Enabled: false, Value: Toggle(true)},
		{Name: "FFlagDebugDisableTelemetryEphemeralCounter", Description: "Disable Ephemeral Counter Telemetry", Category: CategoryTelemetry, Enabled: false, Value: Toggle(true)},
		{Name: "FFlagDebugDisableTelemetryV2Event", Description: "Disable V2 Event Telemetry", Category: CategoryTelemetry, Enabled: false, Value: Toggle(true)},
	}
}
