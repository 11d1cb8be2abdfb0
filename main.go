// coinquest 是一个横版平台跳跃小游戏：收集全部魔法金币，避开巡逻的敌人。
//
// Usage:
//
//	coinquest                       - 加载、主菜单、关卡
//	coinquest --skip-menu           - 加载完成后直接进入关卡
//	coinquest --level my-level.tmj  - 用自己的 Tiled 地图替换内置关卡
//
// Flags:
//
//	--assets <dir>     - 图片和音效目录（默认 ./assets）
//	--verbose          - 输出 DEBUG 日志
//	--save-settings    - 持久化音量和全屏设置
//	--mute             - 不创建音频设备
//	--seed <value>     - 粒子和震屏的随机种子（0 = 按时间）
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/gonewx/coinquest/pkg/app"
	"github.com/gonewx/coinquest/pkg/config"
	"github.com/gonewx/coinquest/pkg/embedded"
)

var (
	flagVerbose      bool
	flagAssets       string
	flagLevel        string
	flagSkipMenu     bool
	flagSaveSettings bool
	flagMute         bool
	flagSeed         int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coinquest",
	Short: "Magical Coin Quest - a small 2D platformer",
	Long: `Magical Coin Quest is a side-scrolling platformer. Collect every coin
in the level to restore balance to the kingdom and avoid the patrolling enemies.

Controls:
  Left/Right  - Move
  Up          - Jump, double jump, wall jump
  R           - Restart the level
  F11         - Toggle fullscreen
  Esc         - Quit (main menu)

Examples:
  coinquest
  coinquest --assets ./assets --verbose
  coinquest --skip-menu --mute
  coinquest --level ./levels/custom.tmj`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Directory containing images and sounds")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "Path to a Tiled .tmj map replacing the built-in level")
	rootCmd.Flags().BoolVar(&flagSkipMenu, "skip-menu", false, "Start the level right after loading")
	rootCmd.Flags().BoolVar(&flagSaveSettings, "save-settings", false, "Persist sound and fullscreen settings")
	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed for particles and camera shake (0 = random based on time)")
}

func runGame(cmd *cobra.Command, args []string) error {
	embedded.Init(dataFS)

	if _, err := os.Stat(flagAssets); err != nil {
		fmt.Fprintf(os.Stderr, "warning: assets directory %q not readable, drawing placeholders\n", flagAssets)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:      flagVerbose,
		Assets:       os.DirFS(flagAssets),
		Data:         embedded.FS(),
		LevelFile:    flagLevel,
		SkipMenu:     flagSkipMenu,
		SaveSettings: flagSaveSettings,
		Mute:         flagMute,
		Seed:         seed,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle(config.GameTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TickRate)
	if gameApp.Settings().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// Update 返回 ebiten.Termination 时 RunGame 返回 nil
	return ebiten.RunGame(gameApp)
}
