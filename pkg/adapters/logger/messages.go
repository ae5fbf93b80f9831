package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Service level messages (info)
		"Export service initialized":      "エクスポートサービスを初期化しました",
		"Export queued for session %s":    "セッション %s のエクスポートをキューに追加しました",
		"Export completed: %s":            "エクスポートが完了しました: %s",
		"Export cancelled":                "エクスポートをキャンセルしました",
		"Shutting down, cleaning up...":   "シャットダウン中。クリーンアップしています...",

		// CLI
		"Staged %d frames":                  "フレーム %d 件をステージしました",
		"Phase %s (%d%%)":                   "フェーズ %s (%d%%)",
		"Encoder frame %d at %.1f fps (%d%%)": "エンコード中 フレーム %d (%.1f fps, %d%%)",

		// Frame store
		"Session %s created":                   "セッション %s を作成しました",
		"Session %s removed":                   "セッション %s を削除しました",
		"Saved frame %s (%dx%d)":               "フレーム %s を保存しました (%dx%d)",
		"Removed %d consumed frames":           "使用済みフレーム %d 件を削除しました",
		"Swept %d orphaned sessions":           "孤立セッション %d 件を掃除しました",
		"Orphan sweep started (every %s)":      "孤立セッションの定期掃除を開始しました (%s 間隔)",

		// Encoder
		"Encoding batch %d: frames %d-%d":      "バッチ %d をエンコード中: フレーム %d-%d",
		"Batch segment written: %s (%d bytes)": "バッチセグメントを書き込みました: %s (%d バイト)",
		"Composing %d segments":                "%d セグメントを結合中",
		"Composing %d segments with audio":     "%d セグメントを音声付きで結合中",
		"ffmpeg found at %s":                   "ffmpeg が見つかりました: %s",

		// Warnings
		"Frame file missing: %s":                       "フレームファイルがありません: %s",
		"Segment verification failed for %s: %s":       "セグメント %s の検証に失敗しました: %s",
		"Segment %s has %d samples, expected %d":       "セグメント %s のサンプル数は %d です (期待値 %d)",
		"Segment %s is %dx%d, expected %dx%d":          "セグメント %s のサイズは %dx%d です (期待値 %dx%d)",
		"Poster thumbnail failed: %s":                  "ポスターサムネイルの生成に失敗しました: %s",
		"Batch discontinuity: batch %d starts at %d, expected %d": "バッチの不連続: バッチ %d が %d から始まっています (期待値 %d)",
		"Segment smaller than expected: %d bytes":      "セグメントが予想より小さいです: %d バイト",
		"Failed to remove frame %s: %s":                "フレーム %s の削除に失敗しました: %s",
		"Session cleanup failed for %s: %s":            "セッション %s のクリーンアップに失敗しました: %s",

		// Errors
		"ffmpeg not available: %s":        "ffmpeg が利用できません: %s",
		"Export failed for session %s: %s": "セッション %s のエクスポートが失敗しました: %s",
		"Failed to save frame: %s":        "フレームの保存に失敗しました: %s",
	})
}
