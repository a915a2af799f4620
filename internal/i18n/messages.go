package i18n

var messages = map[string]map[string]string{
	LocaleJA: {
		"error.bad_request":               "リクエストが不正です",
		"error.unauthorized":              "ログインが必要です",
		"error.forbidden":                 "この操作を行う権限がありません",
		"error.not_found":                 "対象が見つかりません",
		"error.internal":                  "サーバー内部でエラーが発生しました",
		"error.rate_limited":              "試行回数が多すぎます。%d 秒後に再度お試しください",
		"error.login_too_many":            "ログイン試行が多すぎます。%d 秒後に再度お試しください",
		"error.rate_limit_unavailable":    "レート制限を確認できませんでした",
		"error.session_secret_missing":    "セッション鍵が設定されていません",
		"error.token_invalid":             "セッションが無効です",
		"error.token_revoked":             "セッションは失効しています",
		"error.service_key_invalid":       "サービスキーが不正です",
		"error.login_invalid":             "社員コードまたはパスワードが間違っています",
		"error.login_failed":              "ログイン処理中にエラーが発生しました",
		"error.captcha_required":          "画像認証を入力してください",
		"error.captcha_invalid":           "画像認証が一致しません",
		"error.captcha_disabled":          "画像認証は無効です",
		"error.password_old_invalid":      "現在のパスワードが間違っています",
		"error.password_weak":             "パスワードがポリシーを満たしていません",
		"error.password_min_length":       "パスワードは %d 文字以上にしてください",
		"error.password_require_upper":    "パスワードに大文字を含めてください",
		"error.password_require_lower":    "パスワードに小文字を含めてください",
		"error.password_require_number":   "パスワードに数字を含めてください",
		"error.password_require_special":  "パスワードに記号を含めてください",
		"error.id_required":               "ID を指定してください",
		"error.type_required":             "type パラメータを指定してください",
		"error.type_invalid":              "type パラメータが不正です",
		"error.client_fetch_failed":       "取引先の取得に失敗しました",
		"error.client_save_failed":        "取引先の保存に失敗しました",
		"error.client_not_found":          "取引先が見つかりません",
		"error.company_fetch_failed":      "会社情報の取得に失敗しました",
		"error.company_save_failed":       "会社情報の保存に失敗しました",
		"error.company_not_found":         "会社が見つかりません",
		"error.creator_fetch_failed":      "クリエイターの取得に失敗しました",
		"error.creator_save_failed":       "クリエイターの保存に失敗しました",
		"error.creator_not_found":         "クリエイターが見つかりません",
		"error.distribution_invalid":      "分配方法が不正です",
		"error.platform_invalid":          "プラットフォームが不正です",
		"error.invoice_fetch_failed":      "請求書の取得に失敗しました",
		"error.invoice_save_failed":       "請求書の保存に失敗しました",
		"error.invoice_not_found":         "請求書が見つかりません",
		"error.invoice_render_failed":     "請求書の生成に失敗しました",
		"error.vendor_invoice_failed":     "支払請求書の処理に失敗しました",
		"error.payment_fetch_failed":      "支払データの取得に失敗しました",
		"error.payment_save_failed":       "支払データの保存に失敗しました",
		"error.payment_not_found":         "支払データが見つかりません",
		"error.transfer_request_invalid":  "振込申請の内容が不正です",
		"error.transfer_request_exists":   "同じ作業年月の振込申請が既に存在します",
		"error.transfer_status_invalid":   "振込申請のステータスを変更できません",
		"error.already_reconciled":        "既に銀行照合済みです",
		"error.bank_transaction_linked":   "この入出金明細は別のデータに照合済みです",
		"error.bank_transaction_failed":   "入出金明細の取得に失敗しました",
		"error.bank_transaction_missing":  "入出金明細が見つかりません",
		"error.settlement_inconsistent":   "分配方法に不明な値が含まれているため集計できません",
		"error.export_failed":             "エクスポートに失敗しました",
		"error.upload_no_file":            "ファイルが選択されていません",
		"error.upload_invalid":            "このファイルはアップロードできません",
		"error.upload_failed":             "ファイルのアップロードに失敗しました",
		"error.agency_fetch_failed":       "代理店の取得に失敗しました",
		"error.authz_failed":              "権限情報の取得に失敗しました",
		"message.logout":                  "ログアウトしました",
		"message.not_configured":          "データベースが設定されていません",
		"message.transfer_request_create": "振込申請を作成しました",
		"message.transfer_request_delete": "振込申請を削除しました",
	},
	LocaleEN: {
		"error.bad_request":               "Bad request",
		"error.unauthorized":              "Login required",
		"error.forbidden":                 "Permission denied",
		"error.not_found":                 "Not found",
		"error.internal":                  "Internal server error",
		"error.rate_limited":              "Too many attempts, retry in %d seconds",
		"error.login_too_many":            "Too many login attempts, retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.session_secret_missing":    "Session secret is not configured",
		"error.token_invalid":             "Invalid session",
		"error.token_revoked":             "Session has been revoked",
		"error.service_key_invalid":       "Invalid service key",
		"error.login_invalid":             "Invalid employee number or password",
		"error.login_failed":              "Login failed",
		"error.captcha_required":          "Captcha is required",
		"error.captcha_invalid":           "Captcha does not match",
		"error.captcha_disabled":          "Captcha is disabled",
		"error.password_old_invalid":      "Current password is wrong",
		"error.password_weak":             "Password does not satisfy the policy",
		"error.password_min_length":       "Password must be at least %d characters",
		"error.password_require_upper":    "Password needs an upper-case letter",
		"error.password_require_lower":    "Password needs a lower-case letter",
		"error.password_require_number":   "Password needs a digit",
		"error.password_require_special":  "Password needs a symbol",
		"error.id_required":               "ID is required",
		"error.type_required":             "Missing type parameter",
		"error.type_invalid":              "Invalid request type",
		"error.client_fetch_failed":       "Failed to fetch clients",
		"error.client_save_failed":        "Failed to save client",
		"error.client_not_found":          "Client not found",
		"error.company_fetch_failed":      "Failed to fetch companies",
		"error.company_save_failed":       "Failed to save company",
		"error.company_not_found":         "Company not found",
		"error.creator_fetch_failed":      "Failed to fetch creators",
		"error.creator_save_failed":       "Failed to save creator",
		"error.creator_not_found":         "Creator not found",
		"error.distribution_invalid":      "Invalid distribution method",
		"error.platform_invalid":          "Invalid platform",
		"error.invoice_fetch_failed":      "Failed to fetch invoices",
		"error.invoice_save_failed":       "Failed to save invoice",
		"error.invoice_not_found":         "Invoice not found",
		"error.invoice_render_failed":     "Failed to render invoice",
		"error.vendor_invoice_failed":     "Vendor invoice operation failed",
		"error.payment_fetch_failed":      "Failed to fetch payments",
		"error.payment_save_failed":       "Failed to save payment",
		"error.payment_not_found":         "Payment record not found",
		"error.transfer_request_invalid":  "Invalid transfer request",
		"error.transfer_request_exists":   "A transfer request for this work month already exists",
		"error.transfer_status_invalid":   "Transfer request status cannot be changed",
		"error.already_reconciled":        "Already reconciled",
		"error.bank_transaction_linked":   "Bank transaction is already linked to another record",
		"error.bank_transaction_failed":   "Failed to fetch bank transactions",
		"error.bank_transaction_missing":  "Bank transaction not found",
		"error.settlement_inconsistent":   "Unknown distribution method in data",
		"error.export_failed":             "Export failed",
		"error.upload_no_file":            "No file uploaded",
		"error.upload_invalid":            "File type not allowed",
		"error.upload_failed":             "Upload failed",
		"error.agency_fetch_failed":       "Failed to fetch agencies",
		"error.authz_failed":              "Failed to load permissions",
		"message.logout":                  "Logged out",
		"message.not_configured":          "Database is not configured",
		"message.transfer_request_create": "Transfer request created successfully",
		"message.transfer_request_delete": "Transfer request deleted successfully",
	},
}
